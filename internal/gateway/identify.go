package gateway

import (
	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/logger"
)

func (s *Session) identify(l *link) {
	token := s.cfg.Token()
	if token == "" {
		logger.Warn.Println(errors.ErrAbsentToken)
	}
	load := sendFrame{
		Op: OpIdentify,
		Data: identifyFrame{
			Token:      token,
			Intents:    s.cfg.Intents,
			Properties: s.cfg.Properties,
		},
	}
	if err := s.sendJSON(l, load); err != nil {
		logger.Error.Println("identify failed:", err)
		return
	}
	s.mu.Lock()
	s.stats.Identifies++
	s.mu.Unlock()
	if s.cfg.Observer != nil {
		s.cfg.Observer.IdentifySent()
	}
}
