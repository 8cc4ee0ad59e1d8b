package store

import "sync"

// ChangeEvent signals that a collection changed in a committed transaction.
// Subscribers re-read the collection; the event carries no row data.
type ChangeEvent struct {
	Collection Collection
}

// hub fans change notifications out to collection subscribers. Sends are
// non-blocking: a subscriber that has not drained its buffer misses
// intermediate signals but always has one pending, which is enough for a
// re-read model.
type hub struct {
	mu     sync.Mutex
	subs   map[Collection]map[int]chan ChangeEvent
	nextID int
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[Collection]map[int]chan ChangeEvent)}
}

// Subscribe registers for change events on a collection. The returned cancel
// function detaches the subscription and closes the channel.
func (s *Store) Subscribe(c Collection) (<-chan ChangeEvent, func()) {
	return s.hub.subscribe(c)
}

func (h *hub) subscribe(c Collection) (<-chan ChangeEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		ch := make(chan ChangeEvent)
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	ch := make(chan ChangeEvent, 1)
	if h.subs[c] == nil {
		h.subs[c] = make(map[int]chan ChangeEvent)
	}
	h.subs[c][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[c]; ok {
			if sub, ok := subs[id]; ok {
				delete(subs, id)
				close(sub)
			}
		}
	}
	return ch, cancel
}

func (h *hub) notify(c Collection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[c] {
		select {
		case ch <- ChangeEvent{Collection: c}:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for id, ch := range subs {
			delete(subs, id)
			close(ch)
		}
	}
}
