package status

import (
	"net/http"

	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/gateway"
	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/gin-gonic/gin"
)

// Session is the part of *gateway.Session the status routes read.
type Session interface {
	Snapshot() gateway.Snapshot
	State() gateway.State
	Heartbeat() error
}

func ShowStatus(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// SendHeartbeat forces a heartbeat outside the schedule. Debugging only.
func SendHeartbeat(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.State() == gateway.StateClosed {
			errors.SendErrorResponse(c, errors.ErrSessionClosed, errors.StatusSessionClosed)
			return
		}
		if err := session.Heartbeat(); err != nil {
			logger.Info.Println(err)
			if errors.Is(err, errors.ErrNotConnected) {
				errors.SendErrorResponse(c, err, errors.StatusNotConnected)
				return
			}
			errors.SendErrorResponse(c, err, errors.StatusInternalError)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
