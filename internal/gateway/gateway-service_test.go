package gateway

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-winkler/showdown/internal/dtos/room_dto"
	"github.com/daniel-winkler/showdown/internal/entity"
	"github.com/daniel-winkler/showdown/internal/store"
)

type recordedEvent struct {
	RoomID  string
	Event   string
	Payload any
}

// recordingHub captures broadcasts instead of fanning them out.
type recordingHub struct {
	events []recordedEvent
}

func (h *recordingHub) BroadcastRoom(roomID, event string, payload any) {
	h.events = append(h.events, recordedEvent{RoomID: roomID, Event: event, Payload: payload})
}

func (h *recordingHub) eventsOf(kind string) []recordedEvent {
	var out []recordedEvent
	for _, e := range h.events {
		if e.Event == kind {
			out = append(out, e)
		}
	}
	return out
}

func newTestGateway(t *testing.T) (*SessionGateway, *recordingHub) {
	t.Helper()
	hub := &recordingHub{}
	g := NewSessionGateway(store.NewRoomStore(), hub).(*SessionGateway)
	return g, hub
}

func createTestRoom(t *testing.T, g *SessionGateway, roundNames ...string) (*entity.Room, string) {
	t.Helper()
	if len(roundNames) == 0 {
		roundNames = []string{"first"}
	}
	reply, appErr := g.CreateRoom(room_dto.CreateRoomRequest{
		UserName:   "alice",
		RoundNames: roundNames,
	})
	require.Nil(t, appErr)
	return reply.Room, reply.UserID
}

func TestCreateRoom_ValidationFailsFast(t *testing.T) {
	g, hub := newTestGateway(t)

	for name, req := range map[string]room_dto.CreateRoomRequest{
		"blank user name":  {UserName: "", RoundNames: []string{"a"}},
		"no rounds":        {UserName: "alice"},
		"blank round name": {UserName: "alice", RoundNames: []string{""}},
	} {
		t.Run(name, func(t *testing.T) {
			reply, appErr := g.CreateRoom(req)
			assert.Nil(t, reply)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
		})
	}
	assert.Empty(t, hub.events, "validation failures are never broadcast")
}

func TestJoinRoom_RepliesAndBroadcasts(t *testing.T) {
	g, hub := newTestGateway(t)
	room, _ := createTestRoom(t, g)

	reply, appErr := g.JoinRoom(room.ID, room_dto.JoinRoomRequest{UserName: "bob"})
	require.Nil(t, appErr)
	assert.NotEmpty(t, reply.UserID)
	assert.Len(t, reply.Room.Participants, 2)

	updates := hub.eventsOf(room_dto.EventRoomUpdate)
	require.Len(t, updates, 1)
	assert.Equal(t, room.ID, updates[0].RoomID)

	joined := hub.eventsOf(room_dto.EventUserJoined)
	require.Len(t, joined, 1)
	payload, ok := joined[0].Payload.(room_dto.UserJoinedPayload)
	require.True(t, ok)
	assert.Equal(t, "bob", payload.UserName)
	assert.Equal(t, reply.UserID, payload.UserID)
}

func TestJoinRoom_UnknownRoomNoBroadcast(t *testing.T) {
	g, hub := newTestGateway(t)

	reply, appErr := g.JoinRoom("missing", room_dto.JoinRoomRequest{UserName: "bob"})
	assert.Nil(t, reply)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Empty(t, hub.events)
}

func TestSubmitVote_BroadcastsFullSnapshot(t *testing.T) {
	g, hub := newTestGateway(t)
	room, aliceID := createTestRoom(t, g)

	appErr := g.HandleAction(room_dto.WSIncomingAction{
		Type:   room_dto.ActionSubmitVote,
		RoomID: room.ID,
		UserID: aliceID,
		Vote:   cardPtr(entity.NumberCard(5)),
	})
	require.Nil(t, appErr)

	updates := hub.eventsOf(room_dto.EventRoomUpdate)
	require.Len(t, updates, 1)
	payload, ok := updates[0].Payload.(*room_dto.RoomUpdatePayload)
	require.True(t, ok)
	require.Len(t, payload.Room.Rounds[0].Votes, 1)
	assert.Nil(t, payload.Summary, "no summary while the round is still voting")
}

func TestSubmitVote_ValueOutsideDeckRejected(t *testing.T) {
	g, hub := newTestGateway(t)
	room, aliceID := createTestRoom(t, g)

	appErr := g.HandleAction(room_dto.WSIncomingAction{
		Type:   room_dto.ActionSubmitVote,
		RoomID: room.ID,
		UserID: aliceID,
		Vote:   cardPtr(entity.NumberCard(4)),
	})
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Empty(t, hub.events, "rejected vote must not reach the room")
}

func TestHostActions_NonHostRejected(t *testing.T) {
	g, hub := newTestGateway(t)
	room, _ := createTestRoom(t, g)
	reply, appErr := g.JoinRoom(room.ID, room_dto.JoinRoomRequest{UserName: "bob"})
	require.Nil(t, appErr)
	hub.events = nil

	for _, actionType := range []string{room_dto.ActionRevealVotes, room_dto.ActionNextRound} {
		appErr := g.HandleAction(room_dto.WSIncomingAction{
			Type:   actionType,
			RoomID: room.ID,
			UserID: reply.UserID,
		})
		require.NotNil(t, appErr, actionType)
		assert.Equal(t, http.StatusForbidden, appErr.Code)
	}
	assert.Empty(t, hub.events, "unauthorized actions change nothing and broadcast nothing")

	updated, ok := g.Store.GetRoom(room.ID)
	require.True(t, ok)
	assert.Equal(t, entity.RoundStatusVoting, updated.Rounds[0].Status)
	assert.Equal(t, 0, updated.CurrentRound)
}

func TestRevealAndAdvance_HostFlow(t *testing.T) {
	g, hub := newTestGateway(t)
	room, aliceID := createTestRoom(t, g, "A", "B")

	require.Nil(t, g.HandleAction(room_dto.WSIncomingAction{
		Type: room_dto.ActionSubmitVote, RoomID: room.ID, UserID: aliceID, Vote: cardPtr(entity.NumberCard(8)),
	}))

	require.Nil(t, g.HandleAction(room_dto.WSIncomingAction{
		Type: room_dto.ActionRevealVotes, RoomID: room.ID, UserID: aliceID,
	}))

	updates := hub.eventsOf(room_dto.EventRoomUpdate)
	require.NotEmpty(t, updates)
	last := updates[len(updates)-1].Payload.(*room_dto.RoomUpdatePayload)
	assert.Equal(t, entity.RoundStatusRevealed, last.Room.Rounds[0].Status)
	require.NotNil(t, last.Summary, "revealed round carries its summary")
	assert.Equal(t, 1, last.Summary.VoteCount)
	assert.True(t, last.Summary.Consensus)

	require.Nil(t, g.HandleAction(room_dto.WSIncomingAction{
		Type: room_dto.ActionNextRound, RoomID: room.ID, UserID: aliceID,
	}))

	updates = hub.eventsOf(room_dto.EventRoomUpdate)
	last = updates[len(updates)-1].Payload.(*room_dto.RoomUpdatePayload)
	assert.Equal(t, 1, last.Room.CurrentRound)
	assert.Nil(t, last.Summary, "summary disappears once a fresh round is current")
}

func TestNextRound_PastEndIsRejectedForCaller(t *testing.T) {
	g, hub := newTestGateway(t)
	room, aliceID := createTestRoom(t, g)

	require.Nil(t, g.HandleAction(room_dto.WSIncomingAction{
		Type: room_dto.ActionNextRound, RoomID: room.ID, UserID: aliceID,
	}))
	hub.events = nil

	appErr := g.HandleAction(room_dto.WSIncomingAction{
		Type: room_dto.ActionNextRound, RoomID: room.ID, UserID: aliceID,
	})
	require.NotNil(t, appErr, "advancing a completed room errors to the caller")
	assert.Empty(t, hub.events)
}

func TestAttachAndDisconnect_PresenceFlow(t *testing.T) {
	g, hub := newTestGateway(t)
	room, aliceID := createTestRoom(t, g)
	// A second room with no bound connections; the disconnect sweep must
	// leave it silent.
	createTestRoom(t, g)

	require.Nil(t, g.Attach(room.ID, aliceID, "conn-1"))

	updates := hub.eventsOf(room_dto.EventRoomUpdate)
	require.Len(t, updates, 1)
	payload := updates[0].Payload.(*room_dto.RoomUpdatePayload)
	assert.True(t, payload.Room.Participants[0].IsOnline)

	hub.events = nil
	g.Disconnect("conn-1")

	updates = hub.eventsOf(room_dto.EventRoomUpdate)
	require.Len(t, updates, 1, "only the room whose presence changed is broadcast")
	payload = updates[0].Payload.(*room_dto.RoomUpdatePayload)
	assert.Equal(t, room.ID, updates[0].RoomID)
	assert.False(t, payload.Room.Participants[0].IsOnline)
	assert.Len(t, payload.Room.Participants, 1, "disconnect never removes the participant")
}

func TestConcurrentVotes_BroadcastOrderMatchesAcceptance(t *testing.T) {
	g, hub := newTestGateway(t)
	room, _ := createTestRoom(t, g)

	names := []string{"bob", "carol", "dave", "erin", "frank", "grace", "heidi", "ivan"}
	voterIDs := make([]string, 0, len(names))
	for _, name := range names {
		reply, appErr := g.JoinRoom(room.ID, room_dto.JoinRoomRequest{UserName: name})
		require.Nil(t, appErr)
		voterIDs = append(voterIDs, reply.UserID)
	}
	hub.events = nil

	var wg sync.WaitGroup
	for _, userID := range voterIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			appErr := g.HandleAction(room_dto.WSIncomingAction{
				Type:   room_dto.ActionSubmitVote,
				RoomID: room.ID,
				UserID: userID,
				Vote:   cardPtr(entity.NumberCard(5)),
			})
			assert.Nil(t, appErr)
		}(userID)
	}
	wg.Wait()

	// Per-room broadcasts form a total order consistent with the order
	// actions were accepted: each snapshot carries exactly one more vote
	// than the one delivered before it, never fewer.
	updates := hub.eventsOf(room_dto.EventRoomUpdate)
	require.Len(t, updates, len(voterIDs))
	for i, evt := range updates {
		payload, ok := evt.Payload.(*room_dto.RoomUpdatePayload)
		require.True(t, ok)
		assert.Equal(t, i+1, len(payload.Room.Round().Votes),
			"broadcast %d delivered a stale snapshot", i)
	}
}

func TestAttach_UnknownParticipant(t *testing.T) {
	g, hub := newTestGateway(t)
	room, _ := createTestRoom(t, g)

	appErr := g.Attach(room.ID, "nobody", "conn-1")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Empty(t, hub.events)
}

func cardPtr(v entity.CardValue) *entity.CardValue {
	return &v
}
