package chat_test

import (
	"encoding/json"
	"sort"
	"testing"

	"relaychat/internal/app/chat"
)

type delivery struct {
	connID  string
	event   string
	payload any
}

// fakeTransport records every delivery per receiving connection and mimics the
// hub's room bookkeeping.
type fakeTransport struct {
	live  map[string]bool
	rooms map[string]map[string]bool
	sent  []delivery
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		live:  make(map[string]bool),
		rooms: make(map[string]map[string]bool),
	}
}

func (f *fakeTransport) liveIDs() []string {
	ids := make([]string, 0, len(f.live))
	for id := range f.live {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (f *fakeTransport) Broadcast(event string, payload any) {
	for _, id := range f.liveIDs() {
		f.sent = append(f.sent, delivery{id, event, payload})
	}
}

func (f *fakeTransport) EmitToRoom(room, event string, payload any) {
	for _, id := range f.liveIDs() {
		if f.rooms[room][id] {
			f.sent = append(f.sent, delivery{id, event, payload})
		}
	}
}

func (f *fakeTransport) EmitTo(connID, event string, payload any) {
	if f.live[connID] {
		f.sent = append(f.sent, delivery{connID, event, payload})
	}
}

func (f *fakeTransport) JoinRoom(connID, room string) {
	if !f.live[connID] {
		return
	}
	if f.rooms[room] == nil {
		f.rooms[room] = make(map[string]bool)
	}
	f.rooms[room][connID] = true
}

// received returns the payloads of event delivered to connID, in order.
func (f *fakeTransport) received(connID, event string) []any {
	var out []any
	for _, d := range f.sent {
		if d.connID == connID && d.event == event {
			out = append(out, d.payload)
		}
	}
	return out
}

// recipients returns the connections that received event, in delivery order.
func (f *fakeTransport) recipients(event string) []string {
	var out []string
	for _, d := range f.sent {
		if d.event == event {
			out = append(out, d.connID)
		}
	}
	return out
}

func (f *fakeTransport) reset() {
	f.sent = nil
}

type harness struct {
	t         *testing.T
	transport *fakeTransport
	registry  *chat.Registry
	store     *chat.RoomStore
	manager   *chat.Manager
}

func newHarness(t *testing.T, opts ...chat.Option) *harness {
	t.Helper()

	ft := newFakeTransport()
	registry := chat.NewRegistry()
	store := chat.NewRoomStore()

	return &harness{
		t:         t,
		transport: ft,
		registry:  registry,
		store:     store,
		manager:   chat.NewManager(registry, store, ft, opts...),
	}
}

func (h *harness) connect(ids ...string) {
	for _, id := range ids {
		h.transport.live[id] = true
		h.manager.HandleConnect(id)
	}
}

func (h *harness) disconnect(id string) {
	delete(h.transport.live, id)
	for _, members := range h.transport.rooms {
		delete(members, id)
	}
	h.manager.HandleDisconnect(id)
}

func (h *harness) send(connID, event string, payload any) {
	h.t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		h.t.Fatalf("marshal %s payload: %v", event, err)
	}
	h.manager.HandleEvent(connID, event, data)
}

func (h *harness) join(connID, name string) {
	h.t.Helper()
	h.send(connID, chat.EventJoin, map[string]any{"name": name, "avatar": nil})
}

func (h *harness) say(connID, text string) {
	h.t.Helper()
	h.send(connID, chat.EventPublicMessage, map[string]any{"text": text})
}

func (h *harness) whisper(connID, to, text string) {
	h.t.Helper()
	h.send(connID, chat.EventPrivateMessage, map[string]any{"toConnectionId": to, "text": text})
}

func (h *harness) getRoom(connID, roomID string) {
	h.t.Helper()
	h.send(connID, chat.EventGetRoom, map[string]any{"roomId": roomID})
}
