// Package domain contains the core entities of the messenger.
package domain

import "time"

// Room is a named channel containing an ordered sequence of messages.
// Names are not unique; rooms are addressed by ID everywhere.
type Room struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
