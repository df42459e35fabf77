package events

import (
	"encoding/json"
	"testing"
)

func TestHubEmit(t *testing.T) {
	h := NewHub()
	a, b := h.Subscribe(), h.Subscribe()
	if h.Len() != 2 {
		t.Fatalf("want 2 subscribers, got %d", h.Len())
	}

	h.Emit("req-1", TypePostingAdded, map[string]string{"company": "Acme"})
	for _, ch := range []chan string{a, b} {
		var e Event
		if err := json.Unmarshal([]byte(<-ch), &e); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if e.Type != TypePostingAdded || e.Version != 1 || e.RequestID != "req-1" || string(e.Data) != `{"company":"Acme"}` {
			t.Fatalf("unexpected event %+v", e)
		}
	}

	h.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Fatal("want closed channel after unsubscribe")
	}
	if h.Len() != 1 {
		t.Fatalf("want 1 subscriber, got %d", h.Len())
	}
}

func TestHubDropsWhenFull(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	for i := 0; i < 100; i++ {
		h.Emit("", TypePing, nil)
	}
	if len(ch) != cap(ch) {
		t.Fatalf("want buffer full at %d, got %d", cap(ch), len(ch))
	}
}
