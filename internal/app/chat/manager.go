/*
Package chat contains the relay core: the identity registry, the room store, presence
announcements, message routing and the per-connection lifecycle that ties them together.

The core never touches sockets. It talks to connections through the Transport interface
and expects every Manager handler to be invoked from a single goroutine, which the
WebSocket hub guarantees.
*/
package chat

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/req"
)

// ConnState is the lifecycle state of a tracked connection. A connection that is not
// tracked has either never connected or has disconnected; ids are never reused, so the
// two cases are indistinguishable and both drop every event.
type ConnState int

const (
	// StateConnected is a live connection that has not joined yet.
	StateConnected ConnState = iota + 1

	// StateJoined is a live connection with a registered user.
	StateJoined
)

func (s ConnState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	default:
		return "disconnected"
	}
}

// Manager is the connection lifecycle controller. It turns transport events into
// registry changes, presence announcements and routed messages.
type Manager struct {
	registry  *Registry
	store     *RoomStore
	transport Transport

	presence *Presence
	router   *Router

	// mu protects conns.
	mu    sync.Mutex
	conns map[string]ConnState

	logger zerolog.Logger
}

// NewManager wires a Manager around the given registry, store and transport.
func NewManager(registry *Registry, store *RoomStore, transport Transport, opts ...Option) *Manager {
	return &Manager{
		registry:  registry,
		store:     store,
		transport: transport,
		presence:  NewPresence(registry, transport),
		router:    NewRouter(registry, store, transport, opts...),
		conns:     make(map[string]ConnState),
		logger:    logx.Component("lifecycle"),
	}
}

// HandleConnect starts tracking connID and tells the socket its own id.
func (m *Manager) HandleConnect(connID string) {
	m.mu.Lock()
	m.conns[connID] = StateConnected
	m.mu.Unlock()

	m.transport.EmitTo(connID, EventConnected, ConnectedPayload{ConnectionID: connID})

	m.logger.Info().Str("conn_id", connID).Msg("Connection opened.")
}

// HandleDisconnect removes the user of connID, if any, and announces the new user list.
func (m *Manager) HandleDisconnect(connID string) {
	m.mu.Lock()
	state, tracked := m.conns[connID]
	delete(m.conns, connID)
	m.mu.Unlock()

	if !tracked {
		m.logger.Warn().Str("conn_id", connID).Msg("Disconnect for untracked connection ignored.")
		return
	}

	m.registry.Unregister(connID)
	m.presence.Broadcast()

	m.logger.Info().
		Str("conn_id", connID).
		Str("last_state", state.String()).
		Int("online_users", m.registry.Len()).
		Msg("Connection closed.")
}

// HandleEvent decodes and dispatches one named event from connID. Events that cannot be
// served are dropped without telling the client.
func (m *Manager) HandleEvent(connID, event string, data json.RawMessage) {
	if err := m.dispatch(connID, event, data); err != nil {
		m.logger.Debug().
			Str("conn_id", connID).
			Str("event", event).
			Int("code", err.Code).
			Str("reason", err.Message).
			Msg("Event dropped.")
	}
}

func (m *Manager) dispatch(connID, event string, data json.RawMessage) *errs.CustomError {
	if _, ok := m.State(connID); !ok {
		return errs.NewError(errs.ErrConnectionUnknown)
	}

	switch event {
	case EventJoin:
		var payload JoinRequest
		if err := req.BindPayload(data, &payload); err != nil {
			return err
		}
		m.Join(connID, payload)
		return nil

	case EventPublicMessage:
		var payload PublicMessageRequest
		if err := req.BindPayload(data, &payload); err != nil {
			return err
		}
		if err := payload.Validate(); err != nil {
			return err
		}
		_, err := m.router.HandlePublicMessage(connID, payload.Text)
		return err

	case EventPrivateMessage:
		var payload PrivateMessageRequest
		if err := req.BindPayload(data, &payload); err != nil {
			return err
		}
		if err := payload.Validate(); err != nil {
			return err
		}
		_, err := m.router.HandlePrivateMessage(connID, payload.ToConnectionID, payload.Text)
		return err

	case EventGetRoom:
		var payload GetRoomRequest
		if err := req.BindPayload(data, &payload); err != nil {
			return err
		}
		if err := payload.Validate(); err != nil {
			return err
		}
		m.router.HandleGetRoom(connID, payload.RoomID)
		return nil

	default:
		return errs.NewError(errs.ErrUnknownEvent, event)
	}
}

// Join registers the user of connID, announces presence, subscribes the connection to
// the global room and sends it the global history once. Joining again overwrites the
// profile.
func (m *Manager) Join(connID string, payload JoinRequest) {
	u := m.registry.Register(connID, payload.Name, payload.Avatar)

	m.mu.Lock()
	m.conns[connID] = StateJoined
	m.mu.Unlock()

	m.presence.Broadcast()
	m.transport.JoinRoom(connID, GlobalRoomID)
	m.transport.EmitTo(connID, EventRoomMessages, RoomMessages{
		RoomID:   GlobalRoomID,
		Messages: m.store.History(GlobalRoomID),
	})

	m.logger.Info().
		Str("conn_id", connID).
		Str("name", u.Name).
		Int("online_users", m.registry.Len()).
		Msg("User joined.")
}

// State returns the lifecycle state of connID and whether it is tracked.
func (m *Manager) State(connID string) (ConnState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.conns[connID]
	return state, ok
}

// Connections returns the number of tracked connections, joined or not.
func (m *Manager) Connections() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.conns)
}
