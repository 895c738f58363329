package cmd

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"PinguinAgent/config"
	"PinguinAgent/controllers"
	"PinguinAgent/routes"
	"PinguinAgent/services"
	"PinguinAgent/websocket"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the resident monitoring agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.LoadSettings()
		monitor := buildMonitor(settings)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		monitor.Start(ctx)

		if settings.HubURL != "" {
			hubClient := websocket.NewClient(settings.HubURL, settings.DeviceToken, func() {
				monitor.TriggerSync(services.TriggerSocket)
			})
			go hubClient.Run(ctx)
		}

		controllers.SetMonitorService(monitor)
		r := gin.Default()
		routes.RegisterRoutes(r, settings.DeviceToken)

		srv := &http.Server{
			Addr:    "127.0.0.1:" + settings.ListenPort,
			Handler: r,
		}
		go func() {
			<-ctx.Done()
			log.Println("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		log.Println("Local control API on", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}
