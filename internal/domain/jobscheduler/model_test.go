package jobscheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDispatchEvent_Normalize(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 7, 17, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	got, err := DispatchEvent{
		DispatchID:   "  d-1 ",
		Status:       StatusCompleted,
		ErrorMessage: "stale",
	}.Normalize(now)
	require.NoError(t, err)

	require.Equal(t, "d-1", got.DispatchID)
	require.Equal(t, "unknown", got.JobName)
	require.Equal(t, "/unknown", got.JobPath)
	require.Equal(t, now.UTC(), got.OccurredAt)
	require.Equal(t, time.UTC, got.OccurredAt.Location())
	require.Empty(t, got.ErrorMessage)
}

func TestDispatchEvent_NormalizeKeepsFailureMessage(t *testing.T) {
	t.Parallel()

	got, err := DispatchEvent{DispatchID: "d-2", Status: StatusFailed, ErrorMessage: "provider 503"}.Normalize(time.Now())
	require.NoError(t, err)
	require.Equal(t, "provider 503", got.ErrorMessage)
}

func TestDispatchEvent_NormalizeRequiresID(t *testing.T) {
	t.Parallel()

	_, err := DispatchEvent{DispatchID: "  "}.Normalize(time.Now())
	require.ErrorIs(t, err, ErrDispatchIDRequired)
}

func TestClampListLimit(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultListLimit, ClampListLimit(0))
	require.Equal(t, DefaultListLimit, ClampListLimit(-3))
	require.Equal(t, 10, ClampListLimit(10))
	require.Equal(t, MaxListLimit, ClampListLimit(1000))
}

func TestDispatchStatus_Finished(t *testing.T) {
	t.Parallel()

	require.False(t, StatusSent.Finished())
	require.True(t, StatusCompleted.Finished())
	require.True(t, StatusSkipped.Finished())
	require.True(t, StatusFailed.Finished())
}
