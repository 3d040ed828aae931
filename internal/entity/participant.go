package entity

import "time"

// Participant is one user identity inside a room. SocketID tracks the
// single live connection currently bound to them; a fresh bind
// supersedes the previous one.
type Participant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IsCreator   bool      `json:"isCreator"`
	ConnectedAt time.Time `json:"connectedAt"`
	IsOnline    bool      `json:"isOnline"`
	SocketID    string    `json:"-"`
}

// Bind attaches a live connection and marks the participant online.
func (p *Participant) Bind(connID string) {
	p.SocketID = connID
	p.IsOnline = true
}

// Unbind clears the connection binding and marks the participant
// offline. The participant record itself stays in the room.
func (p *Participant) Unbind() {
	p.SocketID = ""
	p.IsOnline = false
}
