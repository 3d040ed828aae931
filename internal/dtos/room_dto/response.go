package room_dto

import (
	"github.com/daniel-winkler/showdown/internal/entity"
)

// RoomReply answers the request/reply actions (create, join): the full
// room snapshot plus the caller's participant id.
type RoomReply struct {
	Room   *entity.Room `json:"room"`
	UserID string       `json:"userId"`
}
