package entity

import (
	"time"
)

type RoomStatus string

const (
	RoomStatusWaiting   RoomStatus = "waiting"
	RoomStatusActive    RoomStatus = "active"
	RoomStatusCompleted RoomStatus = "completed"
)

// Room is one estimation session: a fixed sequence of rounds, an ordered
// participant list, and a cursor over the rounds. The store owns every
// Room and all records hanging off it.
type Room struct {
	ID           string         `json:"id"`
	Name         string         `json:"name,omitempty"`
	CreatedBy    string         `json:"createdBy"`
	CreatedAt    time.Time      `json:"createdAt"`
	Settings     RoomSettings   `json:"settings"`
	Rounds       []*Round       `json:"rounds"`
	CurrentRound int            `json:"currentRound"`
	Status       RoomStatus     `json:"status"`
	Participants []*Participant `json:"participants"`
}

// Participant lookup by id. Returns nil when the id is unknown.
func (r *Room) Participant(participantID string) *Participant {
	for _, p := range r.Participants {
		if p.ID == participantID {
			return p
		}
	}
	return nil
}

// ParticipantByName returns the first participant with the given display
// name. Join relies on this for rejoin-by-name.
func (r *Room) ParticipantByName(name string) *Participant {
	for _, p := range r.Participants {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Creator returns the room's host. Every room has exactly one.
func (r *Room) Creator() *Participant {
	for _, p := range r.Participants {
		if p.IsCreator {
			return p
		}
	}
	return nil
}

// Round returns the round under the cursor, or nil once the room is
// completed past the final round.
func (r *Room) Round() *Round {
	if r.CurrentRound < 0 || r.CurrentRound >= len(r.Rounds) {
		return nil
	}
	return r.Rounds[r.CurrentRound]
}

func (r *Room) IsCompleted() bool {
	return r.Status == RoomStatusCompleted
}

// Age reports how long ago the room was created. Expiration keys off
// this, independent of activity.
func (r *Room) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}
