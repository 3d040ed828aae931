package entity

import "time"

type RoundStatus string

const (
	RoundStatusVoting   RoundStatus = "voting"
	RoundStatusRevealed RoundStatus = "revealed"
)

// Round is one estimation item. Votes are keyed by participant id, one
// per participant, last write wins.
type Round struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Status     RoundStatus      `json:"status"`
	Votes      map[string]*Vote `json:"votes"`
	RevealedAt *time.Time       `json:"revealedAt,omitempty"`
}

func (r *Round) IsVoting() bool {
	return r.Status == RoundStatusVoting
}

func (r *Round) IsRevealed() bool {
	return r.Status == RoundStatusRevealed
}

// Reset puts the round back into voting state with no votes. The store
// calls this exactly when the round becomes current.
func (r *Round) Reset() {
	r.Status = RoundStatusVoting
	r.Votes = make(map[string]*Vote)
	r.RevealedAt = nil
}

// VoteCount is the number of distinct participants who have voted.
func (r *Round) VoteCount() int {
	return len(r.Votes)
}
