package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Utkarsh4517/fast-chat/internal/models"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *SQLStore, name string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), name, "hashed-password")
	require.NoError(t, err)
	return u
}

func seedRoom(t *testing.T, s *SQLStore, name string, creatorID int) *models.Room {
	t.Helper()
	r, err := s.CreateRoom(context.Background(), name, creatorID)
	require.NoError(t, err)
	return r
}
