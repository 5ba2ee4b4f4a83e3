package handlers

import (
	"spacetact/middleware"
	"spacetact/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the global logger tagged with the request's session.
func getLogger(c *gin.Context) *zap.Logger {
	return utils.GetLogger().With(zap.String("session", middleware.SessionID(c)))
}
