package domain

import "time"

// Message is an immutable authored unit of content scoped to one room.
// CreatedAt is assigned server-side, never by the client, so the
// chronological order of a room cannot be manipulated.
type Message struct {
	ID        string
	RoomID    string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}
