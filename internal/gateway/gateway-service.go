package gateway

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/daniel-winkler/showdown/internal/dtos/room_dto"
	"github.com/daniel-winkler/showdown/internal/entity"
	app_error "github.com/daniel-winkler/showdown/internal/errors"
	"github.com/daniel-winkler/showdown/internal/store"
	"github.com/daniel-winkler/showdown/internal/summary"
)

// SessionGateway sits between the transport and the room store. It
// validates and authorizes every inbound action, delegates the mutation
// to the store, and fans the resulting snapshot out to the room's
// subscribers. Errors stop at the originating caller and are never
// broadcast.
type SessionGateway struct {
	Store    store.RoomStoreContract
	Hub      Broadcaster
	Validate *validator.Validate

	// mu holds each accepted action's read-check-mutate-broadcast
	// sequence together. The store's own mutex only serializes the
	// mutation; without this lock two concurrent actions on one room
	// could fan out in reverse order and subscribers would render the
	// stale snapshot.
	mu sync.Mutex
}

func NewSessionGateway(s store.RoomStoreContract, hub Broadcaster) SessionGatewayContract {
	return &SessionGateway{
		Store:    s,
		Hub:      hub,
		Validate: validator.New(),
	}
}

func (g *SessionGateway) CreateRoom(req room_dto.CreateRoomRequest) (*room_dto.RoomReply, *app_error.AppError) {
	if err := g.Validate.Struct(req); err != nil {
		return nil, app_error.Validation(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	room, creatorID, err := g.Store.CreateRoom(req.UserName, req.RoomName, req.RoundNames, req.Settings)
	if err != nil {
		log.Error().Err(err).Msg("gateway: room creation failed")
		return nil, app_error.Internal("failed to create room")
	}

	return &room_dto.RoomReply{Room: room, UserID: creatorID}, nil
}

// JoinRoom replies to the joiner and additionally broadcasts the updated
// room plus a user-joined notice to the members already subscribed.
func (g *SessionGateway) JoinRoom(roomID string, req room_dto.JoinRoomRequest) (*room_dto.RoomReply, *app_error.AppError) {
	if roomID == "" {
		return nil, app_error.Validation("roomId is required", "roomId")
	}
	if err := g.Validate.Struct(req); err != nil {
		return nil, app_error.Validation(fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	room, userID, err := g.Store.JoinRoom(roomID, req.UserName)
	if err != nil {
		return nil, g.storeError(err)
	}

	g.broadcastRoom(room)
	g.Hub.BroadcastRoom(room.ID, room_dto.EventUserJoined, room_dto.UserJoinedPayload{
		UserID:   userID,
		UserName: req.UserName,
	})

	return &room_dto.RoomReply{Room: room, UserID: userID}, nil
}

func (g *SessionGateway) GetRoom(roomID string) (*room_dto.RoomUpdatePayload, *app_error.AppError) {
	room, ok := g.Store.GetRoom(roomID)
	if !ok {
		return nil, app_error.NotFound("room not found")
	}
	return snapshotPayload(room), nil
}

// Attach binds a live connection to a participant and pushes the current
// snapshot to the whole room so everyone sees the presence change.
func (g *SessionGateway) Attach(roomID, userID, connID string) *app_error.AppError {
	if roomID == "" || userID == "" {
		return app_error.Validation("roomId and userId are required", "")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	room := g.Store.BindConnection(roomID, userID, connID)
	if room == nil {
		return app_error.NotFound("unknown room or participant")
	}

	g.broadcastRoom(room)
	return nil
}

// HandleAction dispatches a fire-and-forget websocket action. A returned
// error is delivered to the offending connection only; the room is
// untouched and nothing is broadcast.
func (g *SessionGateway) HandleAction(action room_dto.WSIncomingAction) *app_error.AppError {
	if err := g.Validate.Struct(action); err != nil {
		return app_error.Validation(fmt.Sprintf("Invalid action: %v", err), "action")
	}

	switch action.Type {
	case room_dto.ActionSubmitVote:
		return g.submitVote(action)
	case room_dto.ActionRevealVotes:
		return g.hostAction(action, g.Store.RevealVotes)
	case room_dto.ActionNextRound:
		return g.hostAction(action, g.Store.NextRound)
	default:
		return app_error.Validation(fmt.Sprintf("unknown action type %q", action.Type), "type")
	}
}

func (g *SessionGateway) submitVote(action room_dto.WSIncomingAction) *app_error.AppError {
	if action.Vote == nil {
		return app_error.Validation("vote value is required", "vote")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.Store.GetRoom(action.RoomID)
	if !ok {
		return app_error.NotFound("room not found")
	}
	if !room.Settings.AllowsValue(*action.Vote) {
		return app_error.Validation(fmt.Sprintf("vote value %s is not in this room's deck", action.Vote), "vote")
	}

	updated, err := g.Store.SubmitVote(action.RoomID, action.UserID, *action.Vote)
	if err != nil {
		return g.storeError(err)
	}

	g.broadcastRoom(updated)
	return nil
}

// hostAction runs a host-only store transition (reveal, next-round)
// after checking that the invoking participant is the room's creator.
// The store itself transitions unconditionally; authorization lives
// here, at the boundary.
func (g *SessionGateway) hostAction(action room_dto.WSIncomingAction, op func(string) (*entity.Room, error)) *app_error.AppError {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.Store.GetRoom(action.RoomID)
	if !ok {
		return app_error.NotFound("room not found")
	}

	p := room.Participant(action.UserID)
	if p == nil {
		return app_error.NotFound("participant not found in room")
	}
	if !p.IsCreator {
		return app_error.Unauthorized("only the room creator can perform this action")
	}

	updated, err := op(action.RoomID)
	if err != nil {
		return g.storeError(err)
	}

	g.broadcastRoom(updated)
	return nil
}

// Disconnect sweeps every room for the dropped connection and broadcasts
// the rooms whose presence actually changed. O(rooms) per disconnect;
// room counts are small and disconnects are not a hot path.
func (g *SessionGateway) Disconnect(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, room := range g.Store.Rooms() {
		updated, changed := g.Store.UnbindConnection(room.ID, connID)
		if !changed || updated == nil {
			continue
		}
		log.Info().Str("roomID", room.ID).Str("connID", connID).Msg("gateway: participant went offline")
		g.broadcastRoom(updated)
	}
}

func (g *SessionGateway) broadcastRoom(room *entity.Room) {
	g.Hub.BroadcastRoom(room.ID, room_dto.EventRoomUpdate, snapshotPayload(room))
}

// snapshotPayload attaches the round summary while the current round is
// revealed; summaries over hidden votes would leak them.
func snapshotPayload(room *entity.Room) *room_dto.RoomUpdatePayload {
	payload := &room_dto.RoomUpdatePayload{Room: room}
	if round := room.Round(); round != nil && round.IsRevealed() {
		s := summary.Summarize(round)
		payload.Summary = &s
	}
	return payload
}

func (g *SessionGateway) storeError(err error) *app_error.AppError {
	switch {
	case errors.Is(err, store.ErrRoomNotFound),
		errors.Is(err, store.ErrParticipantNotFound),
		errors.Is(err, store.ErrNoCurrentRound):
		return app_error.NotFound(err.Error())
	case errors.Is(err, store.ErrRoomCompleted):
		return app_error.Validation(err.Error(), "")
	default:
		log.Error().Err(err).Msg("gateway: unexpected store failure")
		return app_error.Internal("unexpected failure")
	}
}
