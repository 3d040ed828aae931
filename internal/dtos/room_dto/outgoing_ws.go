package room_dto

import (
	"github.com/daniel-winkler/showdown/internal/entity"
	"github.com/daniel-winkler/showdown/internal/summary"
)

// Server→client events.
const (
	EventRoomUpdate = "room-update"
	EventUserJoined = "user-joined"
	EventError      = "error"
)

type WSOutgoingEvent struct {
	Event     string `json:"event"`
	RoomID    string `json:"roomId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// RoomUpdatePayload is the full room snapshot sent on every change, no
// diffs. Summary is present while the current round is revealed.
type RoomUpdatePayload struct {
	Room    *entity.Room          `json:"room"`
	Summary *summary.RoundSummary `json:"summary,omitempty"`
}

type UserJoinedPayload struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
