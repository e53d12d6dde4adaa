package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Utkarsh4517/fast-chat/internal/models"
	"github.com/Utkarsh4517/fast-chat/internal/store"
)

// AppendMessage persists one chat line and assigns it the next sequence number
// for its room. The read-increment-insert runs inside a single transaction, so
// no two concurrent appends to the same room can observe the same MAX(seq);
// the UNIQUE(room_id, seq) constraint backs that up. The transaction has
// committed (and the row is durable) before this returns.
func (s *SQLStore) AppendMessage(ctx context.Context, roomID, senderID int, content string) (*models.Message, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var roomExists, senderExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?),
		       EXISTS(SELECT 1 FROM users WHERE id = ?)`, roomID, senderID).
		Scan(&roomExists, &senderExists)
	if err != nil {
		return nil, err
	}
	if !roomExists {
		return nil, fmt.Errorf("room %d: %w", roomID, store.ErrNotFound)
	}
	if !senderExists {
		return nil, fmt.Errorf("sender %d: %w", senderID, store.ErrNotFound)
	}

	var seq int64
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE room_id = ?", roomID).Scan(&seq)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO messages (room_id, sender_id, content, seq, created_at) VALUES (?, ?, ?, ?, ?)",
		roomID, senderID, content, seq, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.Message{
		ID:        int(id),
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		Seq:       seq,
		CreatedAt: now,
	}, nil
}

// RoomMessages returns the room's full history in ascending sequence order.
// An existing room with no messages yields an empty slice; an unknown room
// yields store.ErrNotFound so that joining it can fail instead of looking
// like an empty room.
func (s *SQLStore) RoomMessages(ctx context.Context, roomID int) ([]models.Message, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)", roomID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("room %d: %w", roomID, store.ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.room_id, m.sender_id, u.username, m.content, m.seq, m.created_at
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.room_id = ?
		ORDER BY m.seq ASC`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		var created sql.NullTime
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.SenderName, &m.Content, &m.Seq, &created); err != nil {
			return nil, err
		}
		if created.Valid {
			m.CreatedAt = created.Time
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
