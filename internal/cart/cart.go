// Package cart implements the shopping-cart store: the shopper's working
// selection of products and quantities, persisted locally so it survives
// restarts on the same device.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/errs"
	"github.com/ecommerce-eks/storefront/internal/model"
	"github.com/ecommerce-eks/storefront/internal/storage"
)

// Store owns the cart. One instance is constructed at application start and
// passed to whoever needs it; the cart is mutated only through its methods
// and written back to storage after every mutation.
type Store struct {
	mu      sync.Mutex
	lines   []model.CartLine
	storage storage.Store
	log     *zap.Logger
}

// New rehydrates the cart from storage. Absent or malformed persisted data
// silently yields an empty cart; that is recovery, not an error.
func New(st storage.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{storage: st, log: log}

	raw, err := st.Get(storage.KeyCart)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			log.Warn("cart load failed, starting empty", zap.Error(err))
		}
		return s
	}
	var lines []model.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		log.Warn("persisted cart is malformed, starting empty", zap.Error(err))
		return s
	}
	s.lines = lines
	return s
}

// Add puts qty units of product into the cart. An existing line for the same
// product id is incremented; otherwise a new line is appended. qty must be
// >= 1. Stock limits are the caller's concern.
func (s *Store) Add(p model.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidQuantity, qty)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == p.ID {
			s.lines[i].Quantity += qty
			return s.persist()
		}
	}
	s.lines = append(s.lines, model.CartLine{Product: p, Quantity: qty})
	return s.persist()
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(productID)
}

func (s *Store) removeLocked(productID string) error {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist()
		}
	}
	return s.persist()
}

// SetQuantity replaces the quantity of the line for productID. A quantity
// <= 0 removes the line instead; lines never hold non-positive quantities.
func (s *Store) SetQuantity(productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return s.removeLocked(productID)
	}
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = qty
			break
		}
	}
	return s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return s.persist()
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartLine(nil), s.lines...)
}

// TotalItems sums the quantities of all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice sums quantity x unit price over all lines.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, l := range s.lines {
		total += float64(l.Quantity) * l.Product.Price
	}
	return total
}

// persist writes the whole cart under the fixed key. Callers hold the lock.
func (s *Store) persist() error {
	lines := s.lines
	if lines == nil {
		lines = []model.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(storage.KeyCart, raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
