/*
Package ws is the WebSocket transport of the relay.

The Hub owns every live connection and its room subscriptions and runs a single event
loop that feeds connects, disconnects and inbound events to an EventHandler one at a
time. It also implements the delivery side (broadcast, room fan-out, addressed send)
that the chat core expects from its transport.
*/
package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"relaychat/internal/pkg/logx"
)

const inboundChannelBuffer = 1024

// EventHandler receives the lifecycle and event stream of every connection.
// All calls are made from the Hub's Run goroutine.
type EventHandler interface {
	HandleConnect(connID string)
	HandleEvent(connID, event string, data json.RawMessage)
	HandleDisconnect(connID string)
}

// Envelope is the JSON frame exchanged in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// inboundEvent is an event frame or, when disconnect is set, the end of the client.
// Both share one queue so a disconnect is handled after the client's earlier frames.
type inboundEvent struct {
	client     *Client
	event      string
	data       json.RawMessage
	disconnect bool
}

// Hub tracks live clients and room membership.
type Hub struct {
	// clients maps connection id to client.
	clients map[string]*Client

	// rooms maps room name to the set of subscribed connection ids.
	rooms map[string]map[string]struct{}

	register chan *Client
	inbound  chan inboundEvent

	// stopChan is closed by Shutdown; done is closed when Run returns.
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	// mu protects clients and rooms.
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates an idle Hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		rooms:    make(map[string]map[string]struct{}),
		register: make(chan *Client),
		inbound:  make(chan inboundEvent, inboundChannelBuffer),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logx.Component("hub"),
	}
}

// Run is the Hub's event loop. It returns after Shutdown.
func (h *Hub) Run(handler EventHandler) {
	defer close(h.done)

	h.logger.Info().Msg("Hub event loop started.")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()

			h.logger.Debug().
				Str("conn_id", client.id).
				Int("total_connections", total).
				Msg("Client registered.")

			handler.HandleConnect(client.id)

		case in := <-h.inbound:
			if in.disconnect {
				if h.remove(in.client) {
					handler.HandleDisconnect(in.client.id)
				}
				continue
			}

			h.mu.RLock()
			current, ok := h.clients[in.client.id]
			h.mu.RUnlock()

			if !ok || current != in.client {
				h.logger.Debug().Str("conn_id", in.client.id).Msg("Ignoring event from removed client.")
				continue
			}
			handler.HandleEvent(in.client.id, in.event, in.data)

		case <-h.stopChan:
			h.closeAll()
			h.logger.Info().Msg("Hub event loop stopped.")
			return
		}
	}
}

// remove drops client and its room subscriptions and closes its send queue.
// It reports false when the client was already gone.
func (h *Hub) remove(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.clients[client.id]
	if !ok || current != client {
		return false
	}

	delete(h.clients, client.id)
	for room, members := range h.rooms {
		delete(members, client.id)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	client.closeSend()

	h.logger.Debug().
		Str("conn_id", client.id).
		Int("total_connections", len(h.clients)).
		Msg("Client unregistered.")
	return true
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		client.closeSend()
		delete(h.clients, id)
	}
	h.rooms = make(map[string]map[string]struct{})
}

// Register queues a freshly accepted client. It returns false if the hub is stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregisterClient(client *Client) {
	select {
	case h.inbound <- inboundEvent{client: client, disconnect: true}:
	case <-h.done:
	}
}

func (h *Hub) dispatch(client *Client, event string, data json.RawMessage) {
	select {
	case h.inbound <- inboundEvent{client: client, event: event, data: data}:
	case <-h.done:
	}
}

// Shutdown stops the event loop, closes every client queue and waits for Run to return.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
	<-h.done
}

// Done is closed once the event loop has exited.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ConnectionCount returns the number of live clients.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Broadcast delivers an event to every live client.
func (h *Hub) Broadcast(event string, payload any) {
	frame, ok := h.encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		h.enqueue(client, frame)
	}
}

// EmitToRoom delivers an event to every client subscribed to room.
func (h *Hub) EmitToRoom(room, event string, payload any) {
	frame, ok := h.encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id := range h.rooms[room] {
		if client, ok := h.clients[id]; ok {
			h.enqueue(client, frame)
		}
	}
}

// EmitTo delivers an event to one client. Unknown ids are ignored.
func (h *Hub) EmitTo(connID, event string, payload any) {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()

	if !ok {
		return
	}

	frame, ok := h.encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	h.enqueue(client, frame)
}

// JoinRoom subscribes a live client to room.
func (h *Hub) JoinRoom(connID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[connID]; !ok {
		return
	}

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[room] = members
	}
	members[connID] = struct{}{}
}

// RoomMembers returns the number of clients subscribed to room.
func (h *Hub) RoomMembers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}

func (h *Hub) encode(event string, payload any) ([]byte, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Error marshaling event payload.")
		return nil, false
	}

	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Error marshaling event envelope.")
		return nil, false
	}
	return frame, true
}

// enqueue must be called with mu held (read or write). A client whose queue is full is
// disconnected; its read pump then reports the disconnect through the normal path.
func (h *Hub) enqueue(client *Client, frame []byte) {
	if !client.trySend(frame) {
		h.logger.Warn().
			Str("conn_id", client.id).
			Msg("Client send queue full or closed, dropping connection.")
		client.closeConn()
	}
}
