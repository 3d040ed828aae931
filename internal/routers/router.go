package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daniel-winkler/showdown/internal/middleware"
	"github.com/daniel-winkler/showdown/state"
)

func NewRouter(appState *state.AppState) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	RoomRouter(r, appState)
	return r
}
