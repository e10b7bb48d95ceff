package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "bragboard-store-test-*")
	require.NoError(t, err)

	s, err := New(tempDir, nil)
	require.NoError(t, err)

	cleanup := func() {
		s.Close()
		os.RemoveAll(tempDir)
	}
	return s, cleanup
}
