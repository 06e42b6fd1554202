package notify

import "testing"

func TestHubBroadcastReachesAllSubscribers(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Broadcast("message", "hello")

	for _, ch := range []chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev.Name != "message" || ev.Data != "hello" {
				t.Fatalf("unexpected event %+v", ev)
			}
		default:
			t.Fatal("expected a buffered event")
		}
	}
}

func TestHubSlowClientDoesNotBlockOthers(t *testing.T) {
	h := NewHub()
	slow := h.Subscribe()
	fast := h.Subscribe()
	defer h.Unsubscribe(slow)
	defer h.Unsubscribe(fast)

	// fill the slow client's buffer; further broadcasts must still reach fast
	for i := 0; i < cap(slow)+5; i++ {
		h.Broadcast("message", i)
	}

	if len(fast) != cap(fast) {
		t.Fatalf("expected fast client buffer full, got %d", len(fast))
	}
	if len(slow) != cap(slow) {
		t.Fatalf("expected slow client buffer capped, got %d", len(slow))
	}
}

func TestHubUnsubscribeRemovesClient(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	if h.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", h.ClientCount())
	}
	h.Unsubscribe(ch)
	if h.ClientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", h.ClientCount())
	}
	if _, open := <-ch; open {
		t.Fatal("expected channel closed after unsubscribe")
	}
}
