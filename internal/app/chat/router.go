package chat

import (
	"time"

	"github.com/rs/zerolog"

	"relaychat/internal/app/user"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/randx"
)

// Router validates message events, records them in the RoomStore and delivers them.
// A rejected event is reported to the caller as a coded error and nothing is sent to
// any connection.
type Router struct {
	registry  *Registry
	store     *RoomStore
	transport Transport

	now   func() time.Time
	newID func() string

	logger zerolog.Logger
}

// NewRouter returns a Router over the given stores and transport.
func NewRouter(registry *Registry, store *RoomStore, transport Transport, opts ...Option) *Router {
	o := buildOptions(opts)

	return &Router{
		registry:  registry,
		store:     store,
		transport: transport,
		now:       o.now,
		newID:     o.newID,
		logger:    logx.Component("router"),
	}
}

// HandlePublicMessage appends a message from senderID to the global room and delivers it
// to every subscriber of that room.
func (r *Router) HandlePublicMessage(senderID, text string) (Message, *errs.CustomError) {
	sender, ok := r.registry.Get(senderID)
	if !ok {
		return Message{}, errs.NewError(errs.ErrSenderNotJoined)
	}
	if text == "" {
		return Message{}, errs.NewError(errs.ErrEmptyText)
	}

	msg := r.newMessage(GlobalRoomID, sender, nil, text)
	r.store.Append(GlobalRoomID, msg)
	r.transport.EmitToRoom(GlobalRoomID, EventNewMessage, msg)

	r.logger.Debug().
		Str("message_id", msg.ID).
		Str("sender_id", senderID).
		Msg("Public message routed.")
	return msg, nil
}

// HandlePrivateMessage appends a message from senderID to targetID in their private room
// and delivers it to both connections. The sender receives its own copy because the
// protocol has no separate acknowledgement.
func (r *Router) HandlePrivateMessage(senderID, targetID, text string) (Message, *errs.CustomError) {
	sender, ok := r.registry.Get(senderID)
	if !ok {
		return Message{}, errs.NewError(errs.ErrSenderNotJoined)
	}
	target, ok := r.registry.Get(targetID)
	if !ok {
		return Message{}, errs.NewError(errs.ErrTargetNotFound)
	}
	if text == "" {
		return Message{}, errs.NewError(errs.ErrEmptyText)
	}

	roomID := CanonicalPrivateRoomID(senderID, targetID)
	msg := r.newMessage(roomID, sender, &target, text)
	r.store.Append(roomID, msg)

	r.transport.EmitTo(senderID, EventNewMessage, msg)
	if targetID != senderID {
		r.transport.EmitTo(targetID, EventNewMessage, msg)
	}

	r.logger.Debug().
		Str("message_id", msg.ID).
		Str("room_id", roomID).
		Msg("Private message routed.")
	return msg, nil
}

// HandleGetRoom sends the history of roomID to the requester only and returns it.
// Any connection may read any room whose id it knows.
func (r *Router) HandleGetRoom(requesterID, roomID string) []Message {
	messages := r.store.History(roomID)
	r.transport.EmitTo(requesterID, EventRoomMessages, RoomMessages{
		RoomID:   roomID,
		Messages: messages,
	})
	return messages
}

func (r *Router) newMessage(roomID string, from user.User, to *user.User, text string) Message {
	msg := Message{
		ID:        r.newID(),
		From:      from.Profile(),
		Text:      text,
		Timestamp: r.now().UnixMilli(),
		RoomID:    roomID,
	}
	if to != nil {
		profile := to.Profile()
		msg.To = &profile
	}
	return msg
}

// Option customizes the clock and id source of the core components.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock replaces time.Now as the source of message timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator replaces randx.MessageID as the source of message ids.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: randx.MessageID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
