package viewstate

import (
	"slices"

	"github.com/google/uuid"
)

// Entity is a record addressable by a stable identifier.
// WithEntityID returns a copy carrying the given id.
type Entity[T any] interface {
	EntityID() string
	WithEntityID(id string) T
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	newID func() string
}

// WithIDGenerator overrides the id generator used by Add.
func WithIDGenerator(fn func() string) StoreOption {
	return func(o *storeOptions) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// Store is the ordered in-memory collection backing one panel.
// It is not safe for concurrent use; owners serialize access.
type Store[T Entity[T]] struct {
	items []T
	newID func() string
}

// NewStore creates an empty store.
func NewStore[T Entity[T]](opts ...StoreOption) *Store[T] {
	o := storeOptions{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{newID: o.newID}
}

// Reset replaces the contents of the store, keeping the given order.
func (s *Store[T]) Reset(records []T) {
	s.items = slices.Clone(records)
}

// Add appends rec, assigning a fresh id when it has none.
func (s *Store[T]) Add(rec T) (T, error) {
	id := rec.EntityID()
	if id == "" {
		rec = rec.WithEntityID(s.newID())
	} else if s.indexOf(id) >= 0 {
		var zero T
		return zero, ErrDuplicateID
	}
	s.items = append(s.items, rec)
	return rec, nil
}

// Update applies patch to the record with the given id in place.
// An absent id is a no-op and reports false.
func (s *Store[T]) Update(id string, patch func(T) T) (T, bool) {
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	s.items[i] = patch(s.items[i]).WithEntityID(id)
	return s.items[i], true
}

// Replace swaps the stored record for rec without moving it.
func (s *Store[T]) Replace(id string, rec T) bool {
	_, ok := s.Update(id, func(T) T { return rec })
	return ok
}

// Remove deletes the record and reports the position it held.
func (s *Store[T]) Remove(id string) (T, int, bool) {
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, -1, false
	}
	rec := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	return rec, i, true
}

// Insert places rec at pos, clamped to the store bounds.
func (s *Store[T]) Insert(pos int, rec T) {
	pos = max(0, min(pos, len(s.items)))
	s.items = slices.Insert(s.items, pos, rec)
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	i := s.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// List returns a snapshot of the records in insertion order.
func (s *Store[T]) List() []T {
	return slices.Clone(s.items)
}

// Len reports the number of stored records.
func (s *Store[T]) Len() int {
	return len(s.items)
}

func (s *Store[T]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(rec T) bool { return rec.EntityID() == id })
}
