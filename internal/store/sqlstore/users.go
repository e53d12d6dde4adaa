package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Utkarsh4517/fast-chat/internal/models"
	"github.com/Utkarsh4517/fast-chat/internal/store"
)

func (s *SQLStore) CreateUser(ctx context.Context, username, hashedPassword string) (*models.User, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)", username, hashedPassword)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", username, store.ErrConflict)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{ID: int(id), Username: username, Password: hashedPassword}, nil
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE username = ?", username).
		Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE id = ?", id).
		Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLStore) UserExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	return exists, err
}
