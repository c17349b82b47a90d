package cart

import (
	"sync"
)

// LineItem is one product entry in the cart. A product appears at most once;
// adding it again aggregates into Quantity.
type LineItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Thumbnail   string  `json:"thumbnail"`
	Price       float64 `json:"price"`
	Sale        float64 `json:"sale"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Stock       bool    `json:"stock"`
}

// Store holds the line items of a single browsing session in memory.
// Insertion order is preserved. Mutations notify subscribers after the
// state change, so consumers (badge, drawer) re-read derived values
// instead of sharing mutable references.
type Store struct {
	mu      sync.RWMutex
	items   []LineItem
	subs    map[int]func()
	nextSub int
}

func NewStore() *Store {
	return &Store{
		subs: make(map[int]func()),
	}
}

// AddToCart merges quantity into an existing line item with the same product
// id, or appends a new line item at the end. Quantity is taken as given; the
// caller is responsible for only sending positive amounts.
func (s *Store) AddToCart(product LineItem, quantity int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			s.mu.Unlock()
			s.notify()
			return
		}
	}
	product.Quantity = quantity
	s.items = append(s.items, product)
	s.mu.Unlock()
	s.notify()
}

// UpdateQuantity adjusts a line item's quantity by delta, never dropping
// below 1. Unknown ids are ignored; removal is a separate operation.
func (s *Store) UpdateQuantity(id string, delta int) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id {
			q := s.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			s.items[i].Quantity = q
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// RemoveFromCart drops the line item with the given id. Unknown ids are ignored.
func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	changed := false
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == id {
			changed = true
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of distinct line items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// TotalPrice is the sum of price * quantity over all line items.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all line items (badge count).
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subscribe registers fn to run after every cart mutation and returns an id
// for Unsubscribe.
func (s *Store) Subscribe(fn func()) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return id
}

func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// notify calls subscribers outside the lock so they can read derived values.
func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
