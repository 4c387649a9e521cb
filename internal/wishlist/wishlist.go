// Package wishlist implements the wishlist as a reducer over a set of items
// keyed by id. Adding an id that is already present is a no-op. Persistence
// follows the same backend contract as the cart, under a separate key.
package wishlist

import (
	"encoding/json"
	"sync"

	"github.com/elitestore/storefront/internal/storage"
)

// Item is one saved product.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
}

// State is the ordered set of saved items.
type State struct {
	Items []Item `json:"items"`
}

// Contains reports whether the id is in the wishlist.
func (s State) Contains(id string) bool {
	for _, item := range s.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

type actionKind int

const (
	addItem actionKind = iota
	removeItem
	clear
	load
)

// Action is one state transition input. Construct via the helpers below.
type Action struct {
	kind  actionKind
	item  Item
	id    string
	items []Item
}

// AddItem appends the item unless its id is already present.
func AddItem(item Item) Action { return Action{kind: addItem, item: item} }

// RemoveItem drops the item with the given id.
func RemoveItem(id string) Action { return Action{kind: removeItem, id: id} }

// Clear empties the wishlist.
func Clear() Action { return Action{kind: clear} }

// Load replaces the contents wholesale; used for rehydration.
func Load(items []Item) Action { return Action{kind: load, items: items} }

// Reduce is the pure state transition. It never mutates its input.
func Reduce(state State, action Action) State {
	switch action.kind {
	case addItem:
		if state.Contains(action.item.ID) {
			return state
		}
		items := make([]Item, 0, len(state.Items)+1)
		items = append(items, state.Items...)
		items = append(items, action.item)
		return State{Items: items}

	case removeItem:
		items := make([]Item, 0, len(state.Items))
		for _, existing := range state.Items {
			if existing.ID != action.id {
				items = append(items, existing)
			}
		}
		return State{Items: items}

	case clear:
		return State{Items: []Item{}}

	case load:
		items := make([]Item, len(action.items))
		copy(items, action.items)
		return State{Items: items}

	default:
		return state
	}
}

// Store wraps the reducer with persistence and change notification, same
// contract as the cart store.
type Store struct {
	mu      sync.Mutex
	state   State
	backend storage.Backend
	key     string
	nextSub int
	subs    map[int]func(State)
}

// NewStore rehydrates from the backend under the given key. Missing or
// malformed persisted data is ignored and the wishlist starts empty.
func NewStore(backend storage.Backend, key string) *Store {
	s := &Store{
		backend: backend,
		key:     key,
		state:   State{Items: []Item{}},
		subs:    make(map[int]func(State)),
	}

	if raw, err := backend.Load(key); err == nil {
		var items []Item
		if err := json.Unmarshal(raw, &items); err == nil {
			s.state = Reduce(s.state, Load(items))
		}
	}

	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Dispatch applies the action, persists the item array, and notifies
// subscribers.
func (s *Store) Dispatch(action Action) (State, error) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	snap := s.snapshot()

	raw, err := json.Marshal(s.state.Items)
	if err == nil {
		err = s.backend.Save(s.key, raw)
	}

	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if err != nil {
		return snap, err
	}

	for _, fn := range subs {
		fn(snap)
	}
	return snap, nil
}

// Subscribe registers a callback for every state change and returns an
// unsubscribe function.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshot() State {
	items := make([]Item, len(s.state.Items))
	copy(items, s.state.Items)
	return State{Items: items}
}
