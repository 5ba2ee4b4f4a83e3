package handlers

import (
	"net/http"

	"spacetact/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last background health check. It answers 503
// while any configured Redis is unreachable. A missing model key is reported
// without failing the check.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()

	healthy := true
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}

	code := http.StatusOK
	state := "ok"
	if !healthy {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{
		"status":    state,
		"message":   "Hi, I'm Spacetact",
		"redis":     status.Redis,
		"modelKey":  status.ModelKey,
		"checkedAt": status.CheckedAt,
	})
}
