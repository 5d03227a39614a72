package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/countdown/internal/countdown"
)

func TestEventSpan(t *testing.T) {
	created := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	ev := Event{CreatedAt: created, Date: created.Add(48 * time.Hour)}
	require.Equal(t, 48*time.Hour, ev.Span())

	require.Zero(t, Event{Date: created}.Span())
	require.Zero(t, Event{CreatedAt: created, Date: created.Add(-time.Hour)}.Span())
}

func TestEventOptions(t *testing.T) {
	date := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	o := countdown.DefaultOptions().Apply(Event{Date: date}.Options()...)
	require.True(t, date.Equal(o.Date))
	require.Equal(t, countdown.DefaultText, o.Text)
	require.False(t, o.Fast)

	o = countdown.DefaultOptions().Apply(Event{Date: date, Text: "%d!", Fast: true}.Options()...)
	require.Equal(t, "%d!", o.Text)
	require.True(t, o.Fast)
}
