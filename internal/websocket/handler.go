package websocket

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/daniel-winkler/showdown/internal/dtos/room_dto"
	"github.com/daniel-winkler/showdown/internal/gateway"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the web client's host is pinned down
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades connections and wires them into the hub and the
// session gateway.
type WSHandler struct {
	Hub     *Hub
	Gateway gateway.SessionGatewayContract
}

func NewWSHandler(hub *Hub, gw gateway.SessionGatewayContract) *WSHandler {
	return &WSHandler{Hub: hub, Gateway: gw}
}

// HandleWS attaches a participant's live connection to a room:
// GET /api/v1/rooms/{roomId}/ws?userId=...
func (h *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	userID := r.URL.Query().Get("userId")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := newClient(uuid.New().String(), userID, roomID, conn)

	if appErr := h.Gateway.Attach(roomID, userID, client.ID); appErr != nil {
		// Reject before subscribing: deliver the error and drop the socket.
		data, _ := json.Marshal(room_dto.WSOutgoingEvent{
			Event: room_dto.EventError,
			Data:  room_dto.ErrorPayload{Message: appErr.Message},
		})
		_ = conn.WriteMessage(websocket.TextMessage, data)
		_ = conn.Close()
		return
	}

	h.Hub.Register(client,
		func(data []byte) { h.dispatch(client, data) },
		func() {
			h.Hub.Unregister(client)
			h.Gateway.Disconnect(client.ID)
		},
	)

	// The attach broadcast went out before this client subscribed; hand
	// it the current snapshot directly.
	if snapshot, appErr := h.Gateway.GetRoom(roomID); appErr == nil {
		client.SendEvent(room_dto.WSOutgoingEvent{
			Event:     room_dto.EventRoomUpdate,
			RoomID:    roomID,
			Data:      snapshot,
			Timestamp: time.Now().Unix(),
		})
	}
}

// dispatch parses one fire-and-forget action and runs it through the
// gateway. Errors go back to this connection only; a panic is contained
// the same way so one bad action cannot take the process down.
func (h *WSHandler) dispatch(client *Client, data []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Any("panic", rec).Str("connID", client.ID).Msg("ws: action handler panicked")
			client.SendEvent(room_dto.WSOutgoingEvent{
				Event: room_dto.EventError,
				Data:  room_dto.ErrorPayload{Message: "unexpected failure"},
			})
		}
	}()

	var action room_dto.WSIncomingAction
	if err := json.Unmarshal(data, &action); err != nil {
		client.SendEvent(room_dto.WSOutgoingEvent{
			Event: room_dto.EventError,
			Data:  room_dto.ErrorPayload{Message: "invalid action payload"},
		})
		return
	}

	if appErr := h.Gateway.HandleAction(action); appErr != nil {
		log.Debug().Str("connID", client.ID).Str("type", action.Type).Str("reason", appErr.Message).Msg("ws: action rejected")
		client.SendEvent(room_dto.WSOutgoingEvent{
			Event:  room_dto.EventError,
			RoomID: action.RoomID,
			Data:   room_dto.ErrorPayload{Message: appErr.Message},
		})
	}
}
