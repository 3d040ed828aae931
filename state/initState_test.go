package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAppState_WiresSingletons(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appState := InitAppState(ctx, cancel)

	require.NotNil(t, appState)
	assert.NotNil(t, appState.Store, "the room store is constructed exactly once here")
	assert.NotNil(t, appState.Hub)
	assert.NotNil(t, appState.Gateway)

	// Close is safe on a state with no live connections.
	appState.Close()
}
