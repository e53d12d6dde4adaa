package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Utkarsh4517/fast-chat/internal/store"
)

func TestCreateRoom(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")

	room, err := s.CreateRoom(context.Background(), "general", alice.ID)
	require.NoError(t, err)
	assert.NotZero(t, room.ID)
	assert.Equal(t, "general", room.Name)
	assert.Equal(t, alice.ID, room.CreatorID)
}

func TestCreateRoomUnknownCreator(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateRoom(context.Background(), "general", 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetRoomIncludesCreatorName(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	room := seedRoom(t, s, "general", alice.ID)

	got, err := s.GetRoom(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, "general", got.Name)
	assert.Equal(t, "alice", got.CreatorName)
}

func TestGetRoomNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRoom(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
