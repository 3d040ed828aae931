package state

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/daniel-winkler/showdown/internal/gateway"
	"github.com/daniel-winkler/showdown/internal/store"
	"github.com/daniel-winkler/showdown/internal/websocket"
)

// AppState wires the process-lifetime singletons: the one room store,
// the websocket hub, and the gateway between them. Constructed once at
// startup and passed by handle; nothing looks these up ambiently.
type AppState struct {
	Ctx     context.Context
	Cancel  context.CancelFunc
	Store   *store.RoomStore
	Hub     *websocket.Hub
	Gateway gateway.SessionGatewayContract
}

func InitAppState(ctx context.Context, cancel context.CancelFunc) *AppState {
	roomStore := store.NewRoomStore()
	hub := websocket.NewHub()
	gw := gateway.NewSessionGateway(roomStore, hub)

	log.Info().Msg("application state initialized")
	return &AppState{
		Ctx:     ctx,
		Cancel:  cancel,
		Store:   roomStore,
		Hub:     hub,
		Gateway: gw,
	}
}

func (a *AppState) Close() {
	if a.Hub != nil {
		log.Info().Msg("Closing websocket hub...")
		a.Hub.Close()
	}
}
