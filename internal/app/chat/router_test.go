package chat_test

import (
	"fmt"
	"testing"
	"time"

	"relaychat/internal/app/chat"
	"relaychat/internal/pkg/errs"
)

func newTestRouter(t *testing.T) (*chat.Router, *chat.Registry, *chat.RoomStore, *fakeTransport) {
	t.Helper()

	ft := newFakeTransport()
	registry := chat.NewRegistry()
	store := chat.NewRoomStore()

	seq := 0
	router := chat.NewRouter(registry, store, ft,
		chat.WithClock(func() time.Time { return time.UnixMilli(1700000000000) }),
		chat.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("msg-%03d", seq)
		}),
	)
	return router, registry, store, ft
}

func TestRouter_PublicMessagesKeepSendOrder(t *testing.T) {
	router, registry, store, ft := newTestRouter(t)
	ft.live["a"] = true
	ft.JoinRoom("a", chat.GlobalRoomID)
	registry.Register("a", "Alice", nil)

	const n = 25
	for i := 0; i < n; i++ {
		if _, err := router.HandlePublicMessage("a", fmt.Sprintf("m%d", i)); err != nil {
			t.Fatalf("HandlePublicMessage() error = %v", err)
		}
	}

	history := store.History(chat.GlobalRoomID)
	if len(history) != n {
		t.Fatalf("len(history) = %d, want %d", len(history), n)
	}

	ids := make(map[string]bool)
	for i, msg := range history {
		if msg.Text != fmt.Sprintf("m%d", i) {
			t.Errorf("history[%d].Text = %q", i, msg.Text)
		}
		if ids[msg.ID] {
			t.Errorf("duplicate id %q", msg.ID)
		}
		ids[msg.ID] = true
		if msg.RoomID != chat.GlobalRoomID || msg.To != nil {
			t.Errorf("history[%d] = %+v, want global public message", i, msg)
		}
		if msg.Timestamp != 1700000000000 {
			t.Errorf("Timestamp = %d", msg.Timestamp)
		}
	}
}

func TestRouter_UnregisteredSenderAppendsNothing(t *testing.T) {
	router, registry, store, ft := newTestRouter(t)
	ft.live["ghost"] = true
	ft.live["b"] = true
	registry.Register("b", "Bob", nil)

	if _, err := router.HandlePublicMessage("ghost", "hi"); err == nil || err.Code != errs.ErrSenderNotJoined {
		t.Errorf("public error = %v, want code %d", err, errs.ErrSenderNotJoined)
	}
	if _, err := router.HandlePrivateMessage("ghost", "b", "hi"); err == nil || err.Code != errs.ErrSenderNotJoined {
		t.Errorf("private error = %v, want code %d", err, errs.ErrSenderNotJoined)
	}

	if store.RoomCount() != 0 {
		t.Errorf("RoomCount() = %d, want 0", store.RoomCount())
	}
	if len(ft.sent) != 0 {
		t.Errorf("deliveries = %+v, want none", ft.sent)
	}
}

func TestRouter_DropsInvalidPrivateMessages(t *testing.T) {
	router, registry, store, ft := newTestRouter(t)
	ft.live["a"] = true
	registry.Register("a", "Alice", nil)

	if _, err := router.HandlePrivateMessage("a", "nobody", "hi"); err == nil || err.Code != errs.ErrTargetNotFound {
		t.Errorf("unknown target error = %v", err)
	}
	if _, err := router.HandlePrivateMessage("a", "a", ""); err == nil || err.Code != errs.ErrEmptyText {
		t.Errorf("empty text error = %v", err)
	}
	if _, err := router.HandlePublicMessage("a", ""); err == nil || err.Code != errs.ErrEmptyText {
		t.Errorf("empty public text error = %v", err)
	}

	if store.RoomCount() != 0 || len(ft.sent) != 0 {
		t.Errorf("dropped messages left state: rooms=%d sent=%d", store.RoomCount(), len(ft.sent))
	}
}

func TestRouter_PrivateMessageReachesOnlyBothParties(t *testing.T) {
	router, registry, store, ft := newTestRouter(t)
	for _, id := range []string{"a", "b", "c"} {
		ft.live[id] = true
		ft.JoinRoom(id, chat.GlobalRoomID)
	}
	registry.Register("a", "Alice", nil)
	registry.Register("b", "Bob", nil)
	registry.Register("c", "Carol", nil)

	msg, err := router.HandlePrivateMessage("b", "a", "psst")
	if err != nil {
		t.Fatalf("HandlePrivateMessage() error = %v", err)
	}

	if msg.RoomID != "a_b" {
		t.Errorf("RoomID = %q, want a_b", msg.RoomID)
	}
	if msg.From.Name != "Bob" || msg.To == nil || msg.To.Name != "Alice" {
		t.Errorf("From/To = %+v / %+v", msg.From, msg.To)
	}

	got := ft.recipients(chat.EventNewMessage)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("recipients = %v, want [b a]", got)
	}
	if history := store.History(chat.CanonicalPrivateRoomID("a", "b")); len(history) != 1 {
		t.Errorf("len(history) = %d, want 1", len(history))
	}
}

func TestRouter_PrivateMessageToSelfDeliveredOnce(t *testing.T) {
	router, registry, _, ft := newTestRouter(t)
	ft.live["a"] = true
	registry.Register("a", "Alice", nil)

	msg, err := router.HandlePrivateMessage("a", "a", "note to self")
	if err != nil {
		t.Fatalf("HandlePrivateMessage() error = %v", err)
	}
	if msg.RoomID != "a_a" {
		t.Errorf("RoomID = %q, want a_a", msg.RoomID)
	}
	if got := ft.received("a", chat.EventNewMessage); len(got) != 1 {
		t.Errorf("deliveries to a = %d, want 1", len(got))
	}
}

func TestRouter_GetRoomRepliesToRequesterOnly(t *testing.T) {
	router, _, store, ft := newTestRouter(t)
	ft.live["a"] = true
	ft.live["b"] = true
	store.Append("x_y", chat.Message{ID: "m1", RoomID: "x_y"})

	messages := router.HandleGetRoom("a", "x_y")
	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(messages))
	}

	replies := ft.received("a", chat.EventRoomMessages)
	if len(replies) != 1 {
		t.Fatalf("room_messages to a = %d, want 1", len(replies))
	}
	payload := replies[0].(chat.RoomMessages)
	if payload.RoomID != "x_y" || len(payload.Messages) != 1 {
		t.Errorf("payload = %+v", payload)
	}
	if got := ft.received("b", chat.EventRoomMessages); len(got) != 0 {
		t.Errorf("b received %d room_messages, want 0", len(got))
	}
}
