package status

import "github.com/gin-gonic/gin"

func Routes(r *gin.RouterGroup, session Session) {
	status := r.Group("/status")
	status.GET("", ShowStatus(session))
	status.POST("/heartbeat", SendHeartbeat(session))
}
