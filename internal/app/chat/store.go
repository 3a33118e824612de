package chat

import (
	"sync"
)

// PrivateRoomDelimiter joins the two connection ids of a private room.
// Connection ids are UUIDs and never contain it.
const PrivateRoomDelimiter = "_"

// CanonicalPrivateRoomID returns the id of the private room shared by a and b.
// The result does not depend on argument order.
func CanonicalPrivateRoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + PrivateRoomDelimiter + b
}

// RoomStore keeps the append-only message history of every room.
// Rooms are created on first append and live for the whole process.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string][]Message
}

// NewRoomStore returns an empty RoomStore.
func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string][]Message),
	}
}

// Append adds msg to the tail of the room's history.
func (s *RoomStore) Append(roomID string, msg Message) {
	s.mu.Lock()
	s.rooms[roomID] = append(s.rooms[roomID], msg)
	s.mu.Unlock()
}

// History returns a copy of the room's messages in append order.
// A room that never received a message has an empty, non-nil history.
func (s *RoomStore) History(roomID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.rooms[roomID]
	out := make([]Message, len(messages))
	copy(out, messages)
	return out
}

// RoomCount returns the number of rooms holding at least one message.
func (s *RoomStore) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rooms)
}
