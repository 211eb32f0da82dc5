package errors

import (
	"net/http"

	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/gin-gonic/gin"
)

type StatusCode int

const (
	StatusInternalError StatusCode = iota
	StatusBadRequest
	StatusNotConnected
	StatusSessionClosed
)

func getHTTPStatusCode(code StatusCode) int {
	switch code {
	case StatusInternalError:
		return http.StatusInternalServerError
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusNotConnected:
		return http.StatusServiceUnavailable
	case StatusSessionClosed:
		return http.StatusGone
	default:
		logger.Warn.Printf("Unknown error code: %v\n", code)
		return http.StatusInternalServerError
	}
}

func SendErrorResponse(c *gin.Context, err error, code StatusCode) {
	c.JSON(getHTTPStatusCode(code), Body{
		Error:  err.Error(),
		Status: code,
	})
}
