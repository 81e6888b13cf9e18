package router

import "sync"

// History is the navigable list of route tokens behind back and forward.
// Reflecting the current route again is a no-op, like assigning the same
// location hash twice.
type History struct {
	mu      sync.Mutex
	entries []string
	pos     int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{pos: -1}
}

// Push records route as the current entry, dropping any forward entries.
func (h *History) Push(route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos >= 0 && h.entries[h.pos] == route {
		return
	}
	h.entries = append(h.entries[:h.pos+1], route)
	h.pos++
}

// Current returns the current entry.
func (h *History) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos < 0 {
		return "", false
	}
	return h.entries[h.pos], true
}

// Back moves one entry back and returns it.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos <= 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Forward moves one entry forward and returns it.
func (h *History) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos+1 >= len(h.entries) {
		return "", false
	}
	h.pos++
	return h.entries[h.pos], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
