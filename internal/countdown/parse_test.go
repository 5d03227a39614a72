package countdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	want := time.Date(2026, 12, 25, 18, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-12-25T18:00:00Z",
		"  2026-12-25T18:00:00Z\n",
		"Fri, 25 Dec 2026 18:00:00 UTC",
		"1798221600000",
	} {
		got, ok := ParseTarget(in)
		require.True(t, ok, in)
		require.True(t, want.Equal(got), "%q parsed as %s", in, got)
	}
}

func TestParseTargetLocalWithoutZone(t *testing.T) {
	got, ok := ParseTarget("2026-12-25 18:00:00")
	require.True(t, ok)
	require.Equal(t, 18, got.Hour())
}

func TestParseTargetRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "soon", "not a date at all", "1970-01-01T00:00:00Z"} {
		_, ok := ParseTarget(in)
		require.False(t, ok, in)
	}
}
