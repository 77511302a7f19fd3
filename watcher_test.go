package blescan

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMachineLifecycle(t *testing.T) {
	var m StateMachine
	assert.Equal(t, Created, m.Status())
	require.NoError(t, m.Transition(Started))
	require.NoError(t, m.Transition(Stopping))
	require.NoError(t, m.Transition(Stopped))
	assert.Equal(t, Stopped, m.Status())
}

func TestStateMachineAbort(t *testing.T) {
	var m StateMachine
	require.NoError(t, m.Transition(Started))
	require.NoError(t, m.Transition(Aborted))
	assert.True(t, m.Status().Terminal())

	m = StateMachine{}
	require.NoError(t, m.Transition(Started))
	require.NoError(t, m.Transition(Stopping))
	require.NoError(t, m.Transition(Aborted), "an abort can interrupt a stop in flight")
}

func TestStateMachineInvalid(t *testing.T) {
	var m StateMachine
	err := m.Transition(Stopping)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidState, errors.Cause(err))
	assert.Equal(t, Created, m.Status(), "a rejected transition leaves the state unchanged")

	require.NoError(t, m.Transition(Started))
	assert.Error(t, m.Transition(Stopped), "a scan can't stop without stopping first")
	assert.Error(t, m.Transition(Created))

	require.NoError(t, m.Transition(Aborted))
	assert.Error(t, m.Transition(Started), "terminal states have no outgoing edges")
	assert.Error(t, m.Transition(Stopped))
}

func TestWatcherStatusString(t *testing.T) {
	assert.Equal(t, "Created", Created.String())
	assert.Equal(t, "Aborted", Aborted.String())
	assert.Equal(t, "unknown(9)", WatcherStatus(9).String())
}

func TestWatcherStatusTerminal(t *testing.T) {
	assert.False(t, Created.Terminal())
	assert.False(t, Started.Terminal())
	assert.False(t, Stopping.Terminal())
	assert.True(t, Stopped.Terminal())
	assert.True(t, Aborted.Terminal())
}
