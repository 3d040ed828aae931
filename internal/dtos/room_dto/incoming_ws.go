package room_dto

import (
	"github.com/daniel-winkler/showdown/internal/entity"
)

// Fire-and-forget actions arriving over an attached websocket.
const (
	ActionSubmitVote  = "submit-vote"
	ActionRevealVotes = "reveal-votes"
	ActionNextRound   = "next-round"
)

type WSIncomingAction struct {
	Type   string            `json:"type" validate:"required,oneof=submit-vote reveal-votes next-round"`
	RoomID string            `json:"roomId" validate:"required"`
	UserID string            `json:"userId" validate:"required"`
	Vote   *entity.CardValue `json:"vote,omitempty"`
}
