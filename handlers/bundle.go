package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	OpenChat    gin.HandlerFunc
	SendMessage gin.HandlerFunc
	EndSession  gin.HandlerFunc
	Services    gin.HandlerFunc

	// Operational endpoints
	Health  gin.HandlerFunc
	Metrics gin.HandlerFunc
}
