package controllers

import (
	"net/http"

	"PinguinAgent/services"

	"github.com/gin-gonic/gin"
)

var monitorService *services.MonitorService

// SetMonitorService wires the monitor into the handlers.
func SetMonitorService(service *services.MonitorService) {
	monitorService = service
}

// CheckAppBlocking tells the shim whether a package is currently blocked and
// why. Served from the last pass's cached verdicts; this endpoint sits on
// the launcher's hot path and must not touch the network.
func CheckAppBlocking(c *gin.Context) {
	appPackage := c.Query("app_package")
	if appPackage == "" {
		appPackage = c.Query("package")
		if appPackage == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "app_package is required"})
			return
		}
	}

	verdict, known := monitorService.CheckApp(appPackage)
	c.JSON(http.StatusOK, gin.H{
		"app_package":         appPackage,
		"blocked":             verdict.Blocked,
		"type":                verdict.Reason,
		"minutes_used_today":  verdict.MinutesUsedToday,
		"daily_limit_minutes": verdict.DailyLimitMinutes,
		"known":               known,
	})
}

// Status reports the most recent accounting pass.
func Status(c *gin.Context) {
	pass, ok := monitorService.LatestPass()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "no passes yet"})
		return
	}
	c.JSON(http.StatusOK, pass)
}

// ForceSync queues a full pass, used by the shim after boot and by support.
func ForceSync(c *gin.Context) {
	monitorService.TriggerSync(services.TriggerAPI)
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}

// DebugState dumps the currently blocked set.
func DebugState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"blocked_apps": monitorService.BlockedApps(),
	})
}
