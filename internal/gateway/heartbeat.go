package gateway

import (
	"time"

	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/go-co-op/gocron"
)

// heartbeat is the recurring schedule owned by one connection.
type heartbeat struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
}

func startHeartbeat(interval time.Duration, beat func()) (*heartbeat, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if _, err := s.Every(interval).WaitForSchedule().Do(beat); err != nil {
		return nil, err
	}
	s.StartAsync()
	return &heartbeat{
		scheduler: s,
		interval:  interval,
	}, nil
}

// stop is a no-op on a nil heartbeat so callers can release unconditionally.
// It must not be called with the session lock held.
func (h *heartbeat) stop() {
	if h == nil {
		return
	}
	h.scheduler.Stop()
	logger.Debug.Println("Stopped heartbeat every", h.interval)
}

// Heartbeat sends a heartbeat on the active connection now.
func (s *Session) Heartbeat() error {
	s.mu.Lock()
	l := s.cur
	s.mu.Unlock()
	if l == nil {
		logger.Debug.Println("heartbeat skipped:", errors.ErrNotConnected)
		return errors.ErrNotConnected
	}
	return s.beat(l)
}

// tick is the scheduled heartbeat. Ticks that race a stop are dropped.
func (s *Session) tick(l *link) {
	s.mu.Lock()
	live := s.cur == l && l.heartbeat != nil
	s.mu.Unlock()
	if live {
		s.beat(l)
	}
}

// beat sends {"op":1,"d":<last sequence or null>} on l if l is still the
// active connection.
func (s *Session) beat(l *link) error {
	s.mu.Lock()
	if s.cur != l {
		s.mu.Unlock()
		return nil
	}
	var data any
	if l.seq != nil {
		data = *l.seq
	}
	s.mu.Unlock()

	if err := s.sendJSON(l, sendFrame{Op: OpHeartbeat, Data: data}); err != nil {
		logger.Warn.Println("heartbeat failed:", err)
		return err
	}
	s.mu.Lock()
	s.stats.HeartbeatsSent++
	s.stats.LastHeartbeat = time.Now()
	s.mu.Unlock()
	if s.cfg.Observer != nil {
		s.cfg.Observer.HeartbeatSent()
	}
	return nil
}
