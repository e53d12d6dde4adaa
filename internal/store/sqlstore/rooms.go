package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Utkarsh4517/fast-chat/internal/models"
	"github.com/Utkarsh4517/fast-chat/internal/store"
)

func (s *SQLStore) CreateRoom(ctx context.Context, name string, creatorID int) (*models.Room, error) {
	// Creating a room for an unknown account is a caller error, not a FK panic.
	if _, err := s.GetUserByID(ctx, creatorID); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO rooms (name, creator_id) VALUES (?, ?)", name, creatorID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Room{ID: int(id), Name: name, CreatorID: creatorID}, nil
}

func (s *SQLStore) GetRoom(ctx context.Context, id int) (*models.Room, error) {
	var room models.Room
	err := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.name, r.creator_id, u.username
		FROM rooms r
		JOIN users u ON r.creator_id = u.id
		WHERE r.id = ?`, id).
		Scan(&room.ID, &room.Name, &room.CreatorID, &room.CreatorName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("room %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}
