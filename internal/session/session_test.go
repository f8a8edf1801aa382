package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/session"
)

func TestNewProducesDistinctIDs(t *testing.T) {
	assert := assert.New(t)
	a, err := session.New()
	require.NoError(t, err)
	b, err := session.New()
	require.NoError(t, err)
	assert.NotEqual(a, b)
}

func TestRegistryStartFinishGet(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	reg := session.NewRegistry()
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := reg.Start(started)
	require.NoError(err)
	require.NotNil(s)

	got, ok := reg.Get(s.ID)
	require.True(ok)
	assert.Equal(started, got.Started)
	assert.True(got.Completed.IsZero())

	finished := started.Add(time.Second)
	reg.Finish(s.ID, finished)

	got, ok = reg.Get(s.ID)
	require.True(ok)
	assert.Equal(finished, got.Completed)
}

func TestRegistryFinishUnknownIDIsNoop(t *testing.T) {
	reg := session.NewRegistry()
	unknown, err := session.New()
	require.NoError(t, err)
	reg.Finish(unknown, time.Now())
	_, ok := reg.Get(unknown)
	assert.False(t, ok)
}
