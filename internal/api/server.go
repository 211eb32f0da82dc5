package api

import (
	"net/http"

	"github.com/asianchinaboi/brocord/internal/api/routes"
	"github.com/asianchinaboi/brocord/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
)

func StartServer(conf config.Status, deps routes.Deps) *http.Server {
	r := gin.New()
	r.Use(gin.Recovery())
	routes.PrepareRoutes(r, deps)
	server := &http.Server{ //server settings
		Addr:         conf.Host + ":" + conf.Port,
		WriteTimeout: conf.Timeout.Write,
		ReadTimeout:  conf.Timeout.Read,
		IdleTimeout:  conf.Timeout.Idle,
		Handler: handlers.CORS(
			handlers.AllowedHeaders([]string{"content-type"}),
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}),
		)(r),
	}
	return server
}
