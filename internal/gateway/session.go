// Package gateway runs the client side of the gateway protocol: it connects
// through a transport.Dialer, answers HELLO with a heartbeat schedule and an
// identify, tracks the sequence number and republishes dispatch events.
package gateway

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/asianchinaboi/brocord/internal/transport"
	"github.com/asianchinaboi/brocord/internal/uid"
)

type State int

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateIdentified
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateIdentified:
		return "identified"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Publisher receives every dispatch, keyed by event name.
type Publisher interface {
	Publish(event string, frame DataFrame)
}

// Observer is told about protocol traffic. All methods must be cheap.
type Observer interface {
	FrameReceived(op Opcode)
	Dispatched(event string)
	HeartbeatSent()
	IdentifySent()
}

type Config struct {
	URL        string
	Intents    int
	Properties Properties
	Token      func() string //read at identify time
	Observer   Observer
}

func DefaultProperties(clientName string) Properties {
	return Properties{
		OS:      runtime.GOOS,
		Browser: clientName,
		Device:  clientName,
	}
}

type Stats struct {
	Connections    int       `json:"connections"`
	FramesReceived int       `json:"framesReceived"`
	Dispatches     int       `json:"dispatches"`
	HeartbeatsSent int       `json:"heartbeatsSent"`
	HeartbeatAcks  int       `json:"heartbeatAcks"`
	Identifies     int       `json:"identifies"`
	LastHeartbeat  time.Time `json:"lastHeartbeat"`
	LastAck        time.Time `json:"lastAck"`
}

type Snapshot struct {
	State             string `json:"state"`
	ConnectionID      string `json:"connectionId,omitempty"`
	Sequence          *int64 `json:"sequence"`
	HeartbeatInterval int64  `json:"heartbeatInterval"` //milliseconds, 0 before HELLO
	Stats             Stats  `json:"stats"`
}

// link is the state owned by one connection. It is dropped as a whole when
// the connection goes away, so nothing leaks into the next connect.
type link struct {
	id         string
	conn       transport.Conn
	seq        *int64
	interval   time.Duration
	heartbeat  *heartbeat
	identified bool
}

type Session struct {
	cfg       Config
	dialer    transport.Dialer
	publisher Publisher

	mu    sync.Mutex
	state State
	cur   *link //nil whenever no connection is open
	stats Stats
}

func NewSession(cfg Config, dialer transport.Dialer, publisher Publisher) *Session {
	if cfg.Token == nil {
		cfg.Token = func() string { return "" }
	}
	return &Session{
		cfg:       cfg,
		dialer:    dialer,
		publisher: publisher,
	}
}

// Start begins a connection attempt and returns without waiting for it. The
// result is only visible through logs and State.
func (s *Session) Start() error {
	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return errors.ErrSessionClosed
	case StateIdle:
	default:
		state := s.state
		s.mu.Unlock()
		logger.Warn.Println("start called while", state)
		return errors.ErrSessionStarted
	}
	s.state = StateConnecting
	s.mu.Unlock()

	s.dialer.OnConnectFailed(s.connectFailed)
	s.dialer.OnConnect(s.connected)
	logger.Info.Println("connecting to", s.cfg.URL)
	s.dialer.Connect(s.cfg.URL)
	return nil
}

func (s *Session) connectFailed(err error) {
	logger.Error.Println("Connect Error:", err)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateConnecting {
		s.state = StateIdle
	}
}

func (s *Session) connected(conn transport.Conn) {
	s.mu.Lock()
	if s.state != StateConnecting {
		state := s.state
		s.mu.Unlock()
		logger.Warn.Println("dropping connection that completed while", state)
		conn.Close()
		return
	}
	l := &link{
		id:   uid.Snowflake.Generate().String(),
		conn: conn,
	}
	s.cur = l
	s.state = StateConnected
	s.stats.Connections++
	s.mu.Unlock()

	conn.OnError(func(err error) { s.connError(l, err) })
	conn.OnClose(func(code int, reason string) { s.connClosed(l, code, reason) })
	conn.OnMessage(func(msg transport.Message) { s.receive(l, msg) })
	logger.Info.Println("WebSocket Client Connected:", l.id)
}

func (s *Session) connError(l *link, err error) {
	logger.Error.Println("Connection Error:", l.id, err)
	s.mu.Lock()
	hb := l.heartbeat
	l.heartbeat = nil
	s.mu.Unlock()
	hb.stop()
}

func (s *Session) connClosed(l *link, code int, reason string) {
	logger.Info.Printf("Connection %s closed with code %d %s", l.id, code, reason)
	s.mu.Lock()
	if s.cur == l {
		s.cur = nil
		if s.state != StateClosed {
			s.state = StateIdle
		}
	}
	hb := l.heartbeat
	l.heartbeat = nil
	s.mu.Unlock()
	hb.stop()
}

// Shutdown stops the heartbeat, closes the active connection and makes the
// session unusable. It is safe to call more than once.
func (s *Session) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = StateClosed
	l := s.cur
	s.cur = nil
	var hb *heartbeat
	if l != nil {
		hb = l.heartbeat
		l.heartbeat = nil
	}
	s.mu.Unlock()

	hb.stop()
	if l == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- l.conn.Close() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Sequence returns the sequence field of the latest frame on the active
// connection.
func (s *Session) Sequence() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil || s.cur.seq == nil {
		return 0, false
	}
	return *s.cur.seq, true
}

func (s *Session) HeartbeatInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return 0
	}
	return s.cur.interval
}

func (s *Session) ConnectionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.id
}

func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		State: s.state.String(),
		Stats: s.stats,
	}
	if l := s.cur; l != nil {
		snap.ConnectionID = l.id
		snap.HeartbeatInterval = l.interval.Milliseconds()
		if l.seq != nil {
			seq := *l.seq
			snap.Sequence = &seq
		}
	}
	return snap
}
