package room_handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/daniel-winkler/showdown/internal/dtos/room_dto"
	app_error "github.com/daniel-winkler/showdown/internal/errors"
	"github.com/daniel-winkler/showdown/internal/gateway"
	"github.com/daniel-winkler/showdown/internal/handlers"
	"github.com/daniel-winkler/showdown/internal/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RoomHandler serves the request/reply actions: room creation, join, and
// snapshot fetch. Everything else flows over the websocket.
type RoomHandler struct {
	Gateway gateway.SessionGatewayContract
}

func NewRoomHandler(gw gateway.SessionGatewayContract) *RoomHandler {
	return &RoomHandler{Gateway: gw}
}

func (h *RoomHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.CreateRoomRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	reply, appErr := h.Gateway.CreateRoom(req)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(handlers.CreateResponse("room created", *reply, requestID(r)))
	return nil
}

func (h *RoomHandler) HandleJoinRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req room_dto.JoinRoomRequest
	defer r.Body.Close()

	roomID := chi.URLParam(r, "roomId")
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.Validation("Invalid JSON", "body")
	}

	reply, appErr := h.Gateway.JoinRoom(roomID, req)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room joined", *reply, requestID(r)))
	return nil
}

func (h *RoomHandler) HandleGetRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")

	snapshot, appErr := h.Gateway.GetRoom(roomID)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room snapshot", *snapshot, requestID(r)))
	return nil
}

func requestID(r *http.Request) string {
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		return "unknown"
	}
	return reqID
}
