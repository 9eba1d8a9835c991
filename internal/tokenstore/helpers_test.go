package tokenstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/me/civicflow/internal/store"
)

func testSQLite(t *testing.T, path string) *store.SQLiteStorage {
	t.Helper()
	s, err := store.OpenSQLiteStorage(context.Background(), path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
