package gateway

import (
	"encoding/json"

	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/logger"
)

// SendJSON encodes payload and sends it on the active connection. Without a
// connection the frame is dropped and ErrNotConnected is returned; nothing
// is queued.
func (s *Session) SendJSON(payload any) error {
	l := s.active()
	if l == nil {
		logger.Debug.Println("dropping frame:", errors.ErrNotConnected)
		return errors.ErrNotConnected
	}
	return s.sendJSON(l, payload)
}

// Send writes an already encoded frame as is.
func (s *Session) Send(payload string) error {
	l := s.active()
	if l == nil {
		logger.Debug.Println("dropping frame:", errors.ErrNotConnected)
		return errors.ErrNotConnected
	}
	return l.conn.SendText(payload)
}

func (s *Session) active() *link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *Session) sendJSON(l *link, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	logger.Info.Printf("Sending %s", redact(payload, body))
	return l.conn.SendText(string(body))
}

// redact keeps the credential out of the log.
func redact(payload any, body []byte) []byte {
	f, ok := payload.(sendFrame)
	if !ok || f.Op != OpIdentify {
		return body
	}
	id, ok := f.Data.(identifyFrame)
	if !ok || id.Token == "" {
		return body
	}
	id.Token = "[redacted]"
	out, err := json.Marshal(sendFrame{Op: f.Op, Data: id})
	if err != nil {
		return body
	}
	return out
}
