package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/daniel-winkler/showdown/internal/entity"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found in room")
	ErrNoCurrentRound      = errors.New("room has no current round")
	ErrRoomCompleted       = errors.New("room is completed")
)

// RoomStore is the single owner of all room state. One mutex serializes
// every operation, so each inbound action runs to completion before the
// next begins and broadcasts per room form a total order.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*entity.Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*entity.Room),
	}
}

// CreateRoom builds a room with one round per entry in roundNames and
// the creating participant as host. Input validation is the gateway's
// job; the store trusts its caller.
func (s *RoomStore) CreateRoom(userName, roomName string, roundNames []string, override *entity.SettingsOverride) (*entity.Room, string, error) {
	roomID, err := gonanoid.New()
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	creator := &entity.Participant{
		ID:          uuid.New().String(),
		Name:        userName,
		IsCreator:   true,
		ConnectedAt: now,
		IsOnline:    true,
	}

	rounds := make([]*entity.Round, 0, len(roundNames))
	for _, name := range roundNames {
		rounds = append(rounds, &entity.Round{
			ID:     uuid.New().String(),
			Name:   name,
			Status: entity.RoundStatusVoting,
			Votes:  make(map[string]*entity.Vote),
		})
	}

	room := &entity.Room{
		ID:           roomID,
		Name:         roomName,
		CreatedBy:    creator.ID,
		CreatedAt:    now,
		Settings:     entity.DefaultSettings().Apply(override),
		Rounds:       rounds,
		CurrentRound: 0,
		Status:       entity.RoomStatusWaiting,
		Participants: []*entity.Participant{creator},
	}

	s.mu.Lock()
	s.rooms[room.ID] = room
	snap := snapshot(room)
	s.mu.Unlock()

	log.Info().Str("roomID", room.ID).Str("creator", userName).Int("rounds", len(rounds)).Msg("store: room created")
	return snap, creator.ID, nil
}

// JoinRoom adds a participant, or, when the display name is already
// taken in the room, rejoins as that existing participant and marks them
// online. Join order is preserved.
func (s *RoomStore) JoinRoom(roomID, userName string) (*entity.Room, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, "", ErrRoomNotFound
	}

	if existing := room.ParticipantByName(userName); existing != nil {
		existing.IsOnline = true
		return snapshot(room), existing.ID, nil
	}

	p := &entity.Participant{
		ID:          uuid.New().String(),
		Name:        userName,
		IsCreator:   false,
		ConnectedAt: time.Now(),
		IsOnline:    true,
	}
	room.Participants = append(room.Participants, p)

	log.Info().Str("roomID", roomID).Str("userID", p.ID).Str("userName", userName).Msg("store: participant joined")
	return snapshot(room), p.ID, nil
}

func (s *RoomStore) GetRoom(roomID string) (*entity.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, false
	}
	return snapshot(room), true
}

// Rooms returns a snapshot of every room. The disconnect sweep walks
// this because connections are not indexed to rooms.
func (s *RoomStore) Rooms() []*entity.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		out = append(out, snapshot(room))
	}
	return out
}

func (s *RoomStore) DeleteRoom(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return false
	}
	delete(s.rooms, roomID)
	return true
}

// BindConnection attaches a live connection to a participant. A new
// connection for the same participant supersedes the previous binding.
// Unknown room or participant yields nil, no error.
func (s *RoomStore) BindConnection(roomID, participantID, connID string) *entity.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil
	}
	p := room.Participant(participantID)
	if p == nil {
		return nil
	}
	p.Bind(connID)
	return snapshot(room)
}

// UnbindConnection finds the participant bound to connID, takes them
// offline, and reports whether presence actually changed. The
// participant stays in the room.
func (s *RoomStore) UnbindConnection(roomID, connID string) (*entity.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, false
	}
	for _, p := range room.Participants {
		if p.SocketID == connID {
			p.Unbind()
			return snapshot(room), true
		}
	}
	return snapshot(room), false
}

// SubmitVote upserts the participant's vote for the current round, last
// write wins. When every participant has voted and the room is still
// waiting, the room turns active. Reveal is never automatic.
func (s *RoomStore) SubmitVote(roomID, participantID string, value entity.CardValue) (*entity.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.IsCompleted() {
		return snapshot(room), ErrRoomCompleted
	}
	round := room.Round()
	if round == nil {
		return nil, ErrNoCurrentRound
	}
	p := room.Participant(participantID)
	if p == nil {
		return nil, ErrParticipantNotFound
	}

	round.Votes[p.ID] = &entity.Vote{
		UserID:   p.ID,
		UserName: p.Name,
		Value:    value,
		VotedAt:  time.Now(),
	}

	if room.Status == entity.RoomStatusWaiting && round.VoteCount() == len(room.Participants) {
		room.Status = entity.RoomStatusActive
	}

	return snapshot(room), nil
}

// RevealVotes turns the current round from voting to revealed and stamps
// the reveal time. Re-invoking simply re-stamps; the gateway gates who
// may call this.
func (s *RoomStore) RevealVotes(roomID string) (*entity.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.IsCompleted() {
		return snapshot(room), ErrRoomCompleted
	}
	round := room.Round()
	if round == nil {
		return nil, ErrNoCurrentRound
	}

	now := time.Now()
	round.Status = entity.RoundStatusRevealed
	round.RevealedAt = &now

	log.Info().Str("roomID", roomID).Str("round", round.Name).Msg("store: votes revealed")
	return snapshot(room), nil
}

// NextRound advances the cursor and resets the new current round to an
// empty voting state. Advancing past the final round completes the room;
// the cursor itself never moves past the last index and never regresses.
func (s *RoomStore) NextRound(roomID string) (*entity.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.IsCompleted() {
		return snapshot(room), ErrRoomCompleted
	}

	if room.CurrentRound >= len(room.Rounds)-1 {
		room.Status = entity.RoomStatusCompleted
		log.Info().Str("roomID", roomID).Msg("store: room completed")
		return snapshot(room), nil
	}

	room.CurrentRound++
	room.Rounds[room.CurrentRound].Reset()

	log.Info().Str("roomID", roomID).Int("round", room.CurrentRound).Msg("store: advanced to next round")
	return snapshot(room), nil
}

// AllVoted reports whether the current round has a vote from every
// participant. Pure query.
func (s *RoomStore) AllVoted(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return false
	}
	round := room.Round()
	if round == nil {
		return false
	}
	return round.VoteCount() == len(room.Participants)
}

// ExpireRooms deletes every room older than maxAge, regardless of
// activity, and returns how many were removed.
func (s *RoomStore) ExpireRooms(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	count := 0
	for id, room := range s.rooms {
		if room.Age(now) > maxAge {
			delete(s.rooms, id)
			count++
		}
	}
	return count
}

// snapshot deep-copies a room so callers can marshal and broadcast it
// without holding the store lock. Must be called with the lock held.
func snapshot(room *entity.Room) *entity.Room {
	out := *room

	out.Participants = make([]*entity.Participant, len(room.Participants))
	for i, p := range room.Participants {
		cp := *p
		out.Participants[i] = &cp
	}

	out.Rounds = make([]*entity.Round, len(room.Rounds))
	for i, r := range room.Rounds {
		cr := *r
		cr.Votes = make(map[string]*entity.Vote, len(r.Votes))
		for id, v := range r.Votes {
			cv := *v
			cr.Votes[id] = &cv
		}
		if r.RevealedAt != nil {
			t := *r.RevealedAt
			cr.RevealedAt = &t
		}
		out.Rounds[i] = &cr
	}

	return &out
}
