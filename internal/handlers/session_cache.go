package handlers

import (
	"container/list"
	"sync"
)

// Guests never log out, so per-session stores are held in a bounded LRU
// rather than a bare map. Eviction loses nothing: state lives in the
// storage backend and the store is rebuilt on the next request.
const maxSessionStores = 1024

type sessionCache[S any] struct {
	mu      sync.Mutex
	cap     int
	build   func(sessionID string) S
	order   *list.List
	entries map[string]*list.Element
}

type sessionEntry[S any] struct {
	id    string
	store S
}

func newSessionCache[S any](cap int, build func(sessionID string) S) *sessionCache[S] {
	return &sessionCache[S]{
		cap:     cap,
		build:   build,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

// get returns the cached store for the session, building and caching it on
// a miss. The least recently used entry is dropped once the cache is full.
func (c *sessionCache[S]) get(sessionID string) S {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[sessionID]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*sessionEntry[S]).store
	}

	store := c.build(sessionID)
	c.entries[sessionID] = c.order.PushFront(&sessionEntry[S]{id: sessionID, store: store})
	for c.order.Len() > c.cap {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*sessionEntry[S]).id)
	}
	return store
}

func (c *sessionCache[S]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
