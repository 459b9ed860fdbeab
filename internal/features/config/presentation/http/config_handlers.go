package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk-assistant/internal/features/config/domain"
)

// AppConfigHandler serves the resolved configuration to the form.
type AppConfigHandler struct {
	appConfig *domain.AppConfig
	modes     []string
}

// NewAppConfigHandler creates a new AppConfigHandler.
func NewAppConfigHandler(appConfig *domain.AppConfig, modes []string) *AppConfigHandler {
	return &AppConfigHandler{
		appConfig: appConfig,
		modes:     modes,
	}
}

// GetAppConfigHandler handles fetching the public part of the application configuration.
func (h *AppConfigHandler) GetAppConfigHandler(c *gin.Context) {
	if h.appConfig == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "app config not loaded"})
		return
	}
	c.JSON(http.StatusOK, h.appConfig.Public(h.modes))
}
