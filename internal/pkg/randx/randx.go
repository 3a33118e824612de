/*
Package randx generates the identifiers handed out by the relay.

Connection ids are random UUIDv4 strings. Message ids are UUIDv7 strings, whose leading
millisecond timestamp and sub-millisecond sequence make them sort in creation order while
the random tail keeps two ids from the same instant distinct.
*/
package randx

import (
	"github.com/google/uuid"
)

// ConnectionID returns a new opaque connection identifier.
func ConnectionID() string {
	return uuid.NewString()
}

// MessageID returns a new time-ordered message identifier.
func MessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; a v4 id is still unique.
		return uuid.NewString()
	}
	return id.String()
}
