package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestClient returns a client backed by a fresh sqlite database.
func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return c
}
