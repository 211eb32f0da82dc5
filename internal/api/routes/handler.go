package routes

import (
	"github.com/asianchinaboi/brocord/internal/api/middleware"
	"github.com/asianchinaboi/brocord/internal/api/routes/metrics"
	"github.com/asianchinaboi/brocord/internal/api/routes/status"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Deps struct {
	Session  status.Session
	Gatherer prometheus.Gatherer //nil disables /metrics
}

func PrepareRoutes(r *gin.Engine, deps Deps) {
	r.Use(middleware.Logger)
	apiRoute := r.Group("/api")
	status.Routes(apiRoute, deps.Session)
	if deps.Gatherer != nil {
		metrics.Routes(r, deps.Gatherer)
	}
}
