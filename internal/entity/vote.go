package entity

import "time"

// Vote is a single submitted estimate. UserName is denormalized at
// submission time and does not track later renames.
type Vote struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Value    CardValue `json:"value"`
	VotedAt  time.Time `json:"votedAt"`
}
