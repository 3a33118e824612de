package chat

import (
	"relaychat/internal/app/user"
	"relaychat/internal/pkg/errs"
)

// GlobalRoomID is the public room every joined connection is subscribed to.
const GlobalRoomID = "global"

// Client to server events.
const (
	EventJoin           = "join"
	EventPublicMessage  = "public_message"
	EventPrivateMessage = "private_message"
	EventGetRoom        = "get_room"
)

// Server to client events.
const (
	EventConnected    = "connected"
	EventUsers        = "users"
	EventNewMessage   = "new_message"
	EventRoomMessages = "room_messages"
)

// Message is one immutable entry of a room history.
type Message struct {
	ID        string        `json:"id"`
	From      user.Profile  `json:"from"`
	To        *user.Profile `json:"to,omitempty"`
	Text      string        `json:"text"`
	Timestamp int64         `json:"timestamp"`
	RoomID    string        `json:"roomId"`
}

// JoinRequest is the payload of EventJoin. Both fields are optional.
type JoinRequest struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// PublicMessageRequest is the payload of EventPublicMessage.
type PublicMessageRequest struct {
	Text string `json:"text"`
}

// Validate checks the required fields.
func (r PublicMessageRequest) Validate() *errs.CustomError {
	if r.Text == "" {
		return errs.NewError(errs.ErrEmptyText)
	}
	return nil
}

// PrivateMessageRequest is the payload of EventPrivateMessage.
type PrivateMessageRequest struct {
	ToConnectionID string `json:"toConnectionId"`
	Text           string `json:"text"`
}

// Validate checks the required fields.
func (r PrivateMessageRequest) Validate() *errs.CustomError {
	if r.ToConnectionID == "" {
		return errs.NewError(errs.ErrInvalidParams)
	}
	if r.Text == "" {
		return errs.NewError(errs.ErrEmptyText)
	}
	return nil
}

// GetRoomRequest is the payload of EventGetRoom.
type GetRoomRequest struct {
	RoomID string `json:"roomId"`
}

// Validate checks the required fields.
func (r GetRoomRequest) Validate() *errs.CustomError {
	if r.RoomID == "" {
		return errs.NewError(errs.ErrInvalidParams)
	}
	return nil
}

// RoomMessages is the payload of EventRoomMessages.
type RoomMessages struct {
	RoomID   string    `json:"roomId"`
	Messages []Message `json:"messages"`
}

// ConnectedPayload is the payload of EventConnected, telling a socket its own id.
type ConnectedPayload struct {
	ConnectionID string `json:"connectionId"`
}
