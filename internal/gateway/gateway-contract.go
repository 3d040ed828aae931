package gateway

import (
	"github.com/daniel-winkler/showdown/internal/dtos/room_dto"
	app_error "github.com/daniel-winkler/showdown/internal/errors"
)

// Broadcaster fans an event out to every connection subscribed to a
// room. The websocket hub implements it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastRoom(roomID, event string, payload any)
}

// SessionGatewayContract is the full inbound action surface. Request/
// reply actions return a value; fire-and-forget actions only return an
// error, which is delivered to the offending connection alone.
type SessionGatewayContract interface {
	CreateRoom(req room_dto.CreateRoomRequest) (*room_dto.RoomReply, *app_error.AppError)
	JoinRoom(roomID string, req room_dto.JoinRoomRequest) (*room_dto.RoomReply, *app_error.AppError)
	GetRoom(roomID string) (*room_dto.RoomUpdatePayload, *app_error.AppError)

	Attach(roomID, userID, connID string) *app_error.AppError
	HandleAction(action room_dto.WSIncomingAction) *app_error.AppError
	Disconnect(connID string)
}
