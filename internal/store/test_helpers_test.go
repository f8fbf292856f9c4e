package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ueplot/internal/testutil"
)

// createTestStore creates a new temp-dir store with a deterministic clock
// and sequential run IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path,
		WithClock(testutil.NewRunClock()),
		WithIDGenerator(testutil.NewSequentialIDs("run")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
