package store

import (
	"time"

	"github.com/daniel-winkler/showdown/internal/entity"
)

// RoomStoreContract is the operation surface the gateway programs
// against. The store performs every transition it is asked for;
// authorization of host-only actions is the caller's job.
type RoomStoreContract interface {
	CreateRoom(userName, roomName string, roundNames []string, override *entity.SettingsOverride) (*entity.Room, string, error)
	JoinRoom(roomID, userName string) (*entity.Room, string, error)
	GetRoom(roomID string) (*entity.Room, bool)
	Rooms() []*entity.Room
	DeleteRoom(roomID string) bool

	BindConnection(roomID, participantID, connID string) *entity.Room
	UnbindConnection(roomID, connID string) (*entity.Room, bool)

	SubmitVote(roomID, participantID string, value entity.CardValue) (*entity.Room, error)
	RevealVotes(roomID string) (*entity.Room, error)
	NextRound(roomID string) (*entity.Room, error)
	AllVoted(roomID string) bool

	ExpireRooms(maxAge time.Duration) int
}
