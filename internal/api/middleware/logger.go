package middleware

import (
	"time"

	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/gin-gonic/gin"
)

func Logger(c *gin.Context) {
	start := time.Now()
	c.Next()
	logger.Debug.Printf("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
}
