package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-assistant/internal/features/config/domain"
)

func TestGetAppConfigHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &domain.AppConfig{
		Title:        "AI Helpdesk Assistant",
		Topics:       []string{"Networking", "Storage"},
		SystemPrompt: "secret persona",
		ModelParams:  domain.ModelParams{Provider: "openai", Model: "gpt-4o-mini"},
	}
	r := gin.New()
	r.GET("/api/config/app", NewAppConfigHandler(cfg, []string{"A", "B"}).GetAppConfigHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/config/app", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.PublicConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "AI Helpdesk Assistant", got.Title)
	assert.Equal(t, []string{"Networking", "Storage"}, got.Topics)
	assert.Equal(t, []string{"A", "B"}, got.Modes)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.NotContains(t, w.Body.String(), "secret persona")
}

func TestGetAppConfigHandler_NotLoaded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/config/app", NewAppConfigHandler(nil, nil).GetAppConfigHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/config/app", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
