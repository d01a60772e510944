// Package monitor exposes a small local ops surface for the portal daemon:
// a JSON health snapshot of the registered polling services and a
// token-gated log tail.
package monitor

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"tsc-access-portal/config"
)

// Source is anything that can report health to the monitor.
type Source interface {
	Name() string
	Health() map[string]any
}

// RegisterRoutes mounts /monitor and /logs on the router. logToken gates the
// log tail; an empty token disables that route entirely.
func RegisterRoutes(router *gin.Engine, logToken string, sources ...Source) {
	started := time.Now()

	router.GET("/monitor", func(c *gin.Context) {
		health := make(map[string]any, len(sources)+2)
		health["started_at"] = started
		health["uptime_seconds"] = int(time.Since(started).Seconds())
		for _, src := range sources {
			health[src.Name()] = src.Health()
		}
		c.JSON(200, health)
	})

	if logToken == "" {
		return
	}
	router.GET("/logs", func(c *gin.Context) {
		if c.Query("token") != logToken {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}

		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"error": "Unable to read log"})
			return
		}

		c.Data(200, "text/plain; charset=utf-8", logData)
	})
}

// Serve runs the monitor on the given port until the process exits. Meant to
// be started on its own goroutine.
func Serve(port, logToken string, sources ...Source) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	RegisterRoutes(router, logToken, sources...)
	return router.Run(":" + port)
}
