package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerQueuesUntilFlush(t *testing.T) {
	s := NewScheduler()
	require.Nil(t, s.Flush())

	n := 0
	cancel := s.Every(time.Second, func() { n++ })
	require.Equal(t, 1, s.Active())
	require.NotNil(t, s.Flush())
	require.Nil(t, s.Flush())

	require.NotNil(t, s.Handle(tickMsg{id: 1}))
	require.NotNil(t, s.Handle(tickMsg{id: 1}))
	require.Equal(t, 2, n)

	cancel()
	require.Zero(t, s.Active())
	require.Nil(t, s.Handle(tickMsg{id: 1}))
	require.Equal(t, 2, n)
}

func TestSchedulerCallbackCancelsItself(t *testing.T) {
	s := NewScheduler()
	var cancel func()
	cancel = s.Every(time.Second, func() { cancel() })
	require.Nil(t, s.Handle(tickMsg{id: 1}))
	require.Zero(t, s.Active())
}

func TestSchedulerIgnoresNonPositiveInterval(t *testing.T) {
	s := NewScheduler()
	s.Every(0, func() { t.Fatal("must not run") })
	require.Zero(t, s.Active())
	require.Nil(t, s.Flush())
	require.Nil(t, s.Handle(tickMsg{id: 1}))
}
