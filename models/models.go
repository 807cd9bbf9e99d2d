// munui/models/models.go
package models

import "time"

// --- Core Data Models ---

// Board is one of the fixed topic boards. Boards are static process data,
// never persisted.
type Board struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Post is a single inquiry submitted to a board.
type Post struct {
	ID        int64     `json:"id"`
	Board     string    `json:"board"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []Reply   `json:"replies"`
}

// Reply is one admin response attached to a post, ordered chronologically.
type Reply struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
