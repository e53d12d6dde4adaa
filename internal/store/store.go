package store

import (
	"context"
	"errors"

	"github.com/Utkarsh4517/fast-chat/internal/models"
)

// ErrNotFound is returned when a referenced user, room or message does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint would be violated,
// e.g. creating a user whose username is already taken.
var ErrConflict = errors.New("already exists")

type Store interface {
	// User operations
	CreateUser(ctx context.Context, username, hashedPassword string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UserExists(ctx context.Context, username string) (bool, error)

	// Room operations
	CreateRoom(ctx context.Context, name string, creatorID int) (*models.Room, error)
	GetRoom(ctx context.Context, id int) (*models.Room, error)

	// Message operations. AppendMessage assigns the next per-room sequence
	// number atomically and must not return before the row is durable.
	AppendMessage(ctx context.Context, roomID, senderID int, content string) (*models.Message, error)
	RoomMessages(ctx context.Context, roomID int) ([]models.Message, error)
}
