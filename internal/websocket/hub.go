package websocket

import (
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/daniel-winkler/showdown/internal/dtos/room_dto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Hub groups live connections by room and fans events out to them. It
// knows nothing about room semantics; the gateway decides what to send.
type Hub struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	stats   HubStats
	statsMu sync.Mutex
}

type HubStats struct {
	TotalRooms   int   `json:"total_rooms"`
	TotalClients int   `json:"total_clients"`
	Connections  int64 `json:"connections"`
	EventsSent   int64 `json:"events_sent"`
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// Register subscribes a client to its room's broadcast group and starts
// its pumps.
func (h *Hub) Register(client *Client, onMessage func([]byte), onClose func()) {
	h.mu.Lock()
	if h.rooms[client.RoomID] == nil {
		h.rooms[client.RoomID] = make(map[*Client]struct{})
	}
	h.rooms[client.RoomID][client] = struct{}{}
	size := len(h.rooms[client.RoomID])
	h.mu.Unlock()

	h.statsMu.Lock()
	h.stats.Connections++
	h.statsMu.Unlock()

	go client.writePump()
	go client.readPump(onMessage, onClose)

	log.Info().Str("roomID", client.RoomID).Str("connID", client.ID).Str("userID", client.UserID).Int("roomSize", size).Msg("ws: client registered")
}

// Unregister drops a client from its room's broadcast group.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[client.RoomID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, client.RoomID)
		}
	}
	h.mu.Unlock()

	log.Info().Str("roomID", client.RoomID).Str("connID", client.ID).Msg("ws: client unregistered")
}

// BroadcastRoom sends one event to every active subscriber of a room.
// Satisfies the gateway's Broadcaster contract.
func (h *Hub) BroadcastRoom(roomID, event string, payload any) {
	data, err := json.Marshal(room_dto.WSOutgoingEvent{
		Event:     event,
		RoomID:    roomID,
		Data:      payload,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Str("event", event).Msg("ws: failed to marshal broadcast")
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.rooms[roomID]))
	for client := range h.rooms[roomID] {
		if client.IsActive() {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.Send <- data:
		case <-client.ctx.Done():
		default:
			// Slow consumer: drop the connection rather than block the room.
			log.Warn().Str("roomID", roomID).Str("connID", client.ID).Msg("ws: slow consumer, closing")
			go client.Close()
		}
	}

	h.statsMu.Lock()
	h.stats.EventsSent += int64(len(targets))
	h.statsMu.Unlock()

	log.Debug().Str("roomID", roomID).Str("event", event).Int("targets", len(targets)).Msg("ws: broadcast")
}

// Stats returns a point-in-time view of the hub.
func (h *Hub) Stats() HubStats {
	h.mu.RLock()
	rooms := len(h.rooms)
	clients := 0
	for _, set := range h.rooms {
		clients += len(set)
	}
	h.mu.RUnlock()

	h.statsMu.Lock()
	defer h.statsMu.Unlock()
	out := h.stats
	out.TotalRooms = rooms
	out.TotalClients = clients
	return out
}

// Close shuts every connection down.
func (h *Hub) Close() {
	h.mu.RLock()
	var all []*Client
	for _, clients := range h.rooms {
		for client := range clients {
			all = append(all, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range all {
		client.Close()
	}
	log.Info().Int("clients", len(all)).Msg("ws: hub shutdown")
}
