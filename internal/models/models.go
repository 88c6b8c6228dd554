package models

import "time"

type User struct {
	ID           int
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type Group struct {
	ID          int
	Title       string
	Slug        string
	Description string
}

// Post carries the author username and group fields from the feed joins so
// templates don't issue per-row lookups.
type Post struct {
	ID         int
	AuthorID   int
	AuthorName string
	GroupID    *int
	GroupTitle string
	GroupSlug  string
	Text       string
	Image      string
	PubDate    time.Time
}

type Comment struct {
	ID         int
	PostID     int
	AuthorID   int
	AuthorName string
	Text       string
	Created    time.Time
}

// Follow is a directed edge: User follows Author.
type Follow struct {
	ID       int
	UserID   int
	AuthorID int
}
