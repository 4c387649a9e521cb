// Package cart implements the shopping cart as a pure reducer over an
// ordered list of line items, wrapped in a Store that persists every state
// change through a storage.Backend.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/elitestore/storefront/internal/storage"
)

// Item is one cart line. Lines are keyed by the compound identity
// (productId, size, color): the same product in a different size or color
// is a separate line.
type Item struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Size          string  `json:"size,omitempty"`
	Color         string  `json:"color,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
}

// Key returns the line's compound identity.
func (i Item) Key() string {
	return i.ProductID + "|" + i.Size + "|" + i.Color
}

// State is the cart contents plus the derived total, recomputed on every
// transition.
type State struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

type actionKind int

const (
	addItem actionKind = iota
	updateQuantity
	removeItem
	clear
	load
)

// Action is one state transition input. Construct via the helpers below.
type Action struct {
	kind     actionKind
	item     Item
	key      string
	quantity int
	items    []Item
}

// AddItem merges the quantity into an existing line with the same compound
// key, or appends a new line.
func AddItem(item Item) Action { return Action{kind: addItem, item: item} }

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func UpdateQuantity(key string, quantity int) Action {
	return Action{kind: updateQuantity, key: key, quantity: quantity}
}

// RemoveItem drops the line with the given compound key.
func RemoveItem(key string) Action { return Action{kind: removeItem, key: key} }

// Clear empties the cart.
func Clear() Action { return Action{kind: clear} }

// Load replaces the contents wholesale; used for rehydration.
func Load(items []Item) Action { return Action{kind: load, items: items} }

// Reduce is the pure state transition. It never mutates its input.
func Reduce(state State, action Action) State {
	var items []Item

	switch action.kind {
	case addItem:
		merged := false
		items = make([]Item, 0, len(state.Items)+1)
		for _, existing := range state.Items {
			if existing.Key() == action.item.Key() {
				existing.Quantity += action.item.Quantity
				merged = true
			}
			items = append(items, existing)
		}
		if !merged {
			items = append(items, action.item)
		}

	case updateQuantity:
		items = make([]Item, 0, len(state.Items))
		for _, existing := range state.Items {
			if existing.Key() == action.key {
				if action.quantity <= 0 {
					continue
				}
				existing.Quantity = action.quantity
			}
			items = append(items, existing)
		}

	case removeItem:
		items = make([]Item, 0, len(state.Items))
		for _, existing := range state.Items {
			if existing.Key() != action.key {
				items = append(items, existing)
			}
		}

	case clear:
		items = []Item{}

	case load:
		items = make([]Item, len(action.items))
		copy(items, action.items)

	default:
		return state
	}

	return State{Items: items, Total: total(items)}
}

func total(items []Item) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// Store wraps the reducer with persistence and change notification. Every
// dispatched action is written through to the backend; subscribers see the
// new state after it is persisted.
type Store struct {
	mu      sync.Mutex
	state   State
	backend storage.Backend
	key     string
	nextSub int
	subs    map[int]func(State)
}

// NewStore rehydrates from the backend under the given key. Missing or
// malformed persisted data is ignored and the cart starts empty.
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

// Dispatch applies the action, persists the new item list, and notifies
// subscribers. The persisted form is the bare item array, matching the
// storefront client's storage format.
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
	return State{Items: items, Total: s.state.Total}
}
