package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "OK", "service": "ohada-ledger"})
}

// registerHealthRoutes registers the unauthenticated '/health' route
func registerHealthRoutes(r *gin.Engine) {
	r.GET("/health", getHealth)
}
