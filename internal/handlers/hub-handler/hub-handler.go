package hub_handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	app_error "github.com/daniel-winkler/showdown/internal/errors"
	"github.com/daniel-winkler/showdown/internal/handlers"
	"github.com/daniel-winkler/showdown/internal/middleware"
	"github.com/daniel-winkler/showdown/internal/websocket"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type HubHandler struct {
	Hub *websocket.Hub
}

func NewHubHandler(hub *websocket.Hub) *HubHandler {
	return &HubHandler{Hub: hub}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "showdown",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.Stats()
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("websocket stats", stats, reqID))
	return nil
}
