package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTimeOrderedGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewTimeOrderedGenerator("")
	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(7), parsed.Version())
}

func TestTimeOrderedGenerator_Prefix(t *testing.T) {
	t.Parallel()

	got, err := NewTimeOrderedGenerator("manual").NewID()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "manual-"), got)

	_, err = uuid.Parse(strings.TrimPrefix(got, "manual-"))
	require.NoError(t, err)
}
