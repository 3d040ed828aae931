package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/daniel-winkler/showdown/internal/handlers"
	hub_handler "github.com/daniel-winkler/showdown/internal/handlers/hub-handler"
	room_handler "github.com/daniel-winkler/showdown/internal/handlers/room-handler"
	"github.com/daniel-winkler/showdown/internal/websocket"
	"github.com/daniel-winkler/showdown/state"
)

func RoomRouter(r chi.Router, appState *state.AppState) {
	roomHandler := room_handler.NewRoomHandler(appState.Gateway)
	hubHandler := hub_handler.NewHubHandler(appState.Hub)
	wsHandler := websocket.NewWSHandler(appState.Hub, appState.Gateway)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))

		r.Post("/rooms", handlers.WrapHandler(roomHandler.HandleCreateRoom))
		r.Route("/rooms/{roomId}", func(r chi.Router) {
			r.Get("/", handlers.WrapHandler(roomHandler.HandleGetRoom))
			r.Post("/join", handlers.WrapHandler(roomHandler.HandleJoinRoom))
			r.Get("/ws", wsHandler.HandleWS)
		})
	})
}
