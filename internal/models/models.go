package models

import "time"

type User struct {
	ID       int    `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

type Room struct {
	ID        int    `json:"room_id"`
	Name      string `json:"name"`
	CreatorID int    `json:"creator_id"`
	// CreatorName is filled in by queries that join against users.
	CreatorName string `json:"creator,omitempty"`
}

// Message is one persisted chat line. Seq is assigned at persistence time and
// defines the total order of messages within a room.
type Message struct {
	ID         int       `json:"id"`
	RoomID     int       `json:"room_id"`
	SenderID   int       `json:"sender_id"`
	SenderName string    `json:"sender"`
	Content    string    `json:"content"`
	Seq        int64     `json:"seq"`
	CreatedAt  time.Time `json:"created_at"`
}
