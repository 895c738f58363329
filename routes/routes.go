package routes

import (
	"net/http"

	"PinguinAgent/controllers"
	"PinguinAgent/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, deviceToken string) {
	// Public route, used by the shim to detect whether the agent is up.
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Everything else requires the device token.
	api := r.Group("/")
	api.Use(middlewares.DeviceAuthMiddleware(deviceToken))
	{
		api.GET("/check-blocking", controllers.CheckAppBlocking)
		api.GET("/status", controllers.Status)
		api.POST("/sync", controllers.ForceSync)
		api.GET("/debug/state", controllers.DebugState)
	}
}
