package gateway

import (
	"time"

	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/asianchinaboi/brocord/internal/transport"
)

func (s *Session) receive(l *link, msg transport.Message) {
	if msg.Type != transport.TextMessage {
		logger.Debug.Println(errors.ErrBinaryFrame, len(msg.Data), "bytes dropped")
		return
	}
	logger.Debug.Println(string(msg.Data))
	frame, err := ParseFrame(msg.Data)
	if err != nil {
		logger.Warn.Println(err)
		return
	}
	s.handle(l, frame)
}

// handle runs one decoded frame through the opcode state machine. The
// sequence is taken from every frame, including ones that carry none.
func (s *Session) handle(l *link, frame DataFrame) {
	payload, err := frame.Payload()

	s.mu.Lock()
	if s.cur != l {
		s.mu.Unlock()
		return
	}
	l.seq = frame.Seq
	s.stats.FramesReceived++
	s.mu.Unlock()

	if s.cfg.Observer != nil {
		s.cfg.Observer.FrameReceived(frame.Op)
	}
	if err != nil {
		logger.Warn.Println(err)
		return
	}

	switch p := payload.(type) {
	case Dispatch:
		logger.Debug.Println("Received DISPATCH", p.Name)
		s.mu.Lock()
		s.stats.Dispatches++
		s.mu.Unlock()
		if s.cfg.Observer != nil {
			s.cfg.Observer.Dispatched(p.Name)
		}
		if s.publisher != nil {
			s.publisher.Publish(p.Name, p.Frame)
		}
	case HeartbeatRequest:
		logger.Debug.Println("Received HEARTBEAT request")
		s.beat(l)
	case Hello:
		logger.Info.Println("Received HELLO")
		logger.Debug.Println("Heartbeat interval", p.HeartbeatInterval)
		s.hello(l, p)
	case HeartbeatAck:
		logger.Debug.Println("Got ack")
		s.mu.Lock()
		s.stats.HeartbeatAcks++
		s.stats.LastAck = time.Now()
		s.mu.Unlock()
	case Unknown:
		logger.Debug.Printf("Ignoring op %v", p.Op)
	}
}

// hello starts the heartbeat schedule and identifies. Both happen once per
// connection; later HELLOs on the same connection are ignored.
func (s *Session) hello(l *link, p Hello) {
	s.mu.Lock()
	if s.cur != l {
		s.mu.Unlock()
		return
	}
	if l.heartbeat != nil || l.identified {
		s.mu.Unlock()
		logger.Warn.Println("ignoring repeated HELLO on connection", l.id)
		return
	}
	hb, err := startHeartbeat(p.HeartbeatInterval, func() { s.tick(l) })
	if err != nil {
		s.mu.Unlock()
		logger.Error.Println("could not schedule heartbeat:", err)
		return
	}
	l.interval = p.HeartbeatInterval
	l.heartbeat = hb
	l.identified = true
	s.state = StateIdentified
	s.mu.Unlock()

	s.identify(l)
}
