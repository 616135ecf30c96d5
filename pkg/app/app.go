package app

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/tick/pkg/item"
	"tableflip.dev/tick/pkg/store"
)

// Service owns the authoritative ordered item sequence and mediates every
// mutation. Validation happens before any state changes, and the whole
// sequence is persisted before a mutating call returns, so the store and
// the in-memory view never diverge between handlers.
type Service struct {
	Persistence store.Persistence

	items    []*item.Item
	hydrated bool
}

var (
	// ErrEmptyInput rejects adds and renames whose text trims to nothing.
	ErrEmptyInput = errors.New("app: item text is empty")

	// ErrDuplicateItem rejects text that already names another item.
	ErrDuplicateItem = errors.New("app: an item with that text already exists")

	// ErrNotFound reports an unknown item ID.
	ErrNotFound = errors.New("app: item not found")
)

// Hydrate loads the persisted sequence. It runs once; later calls are
// no-ops so callers can invoke it defensively. A missing or unreadable
// store hydrates to an empty sequence rather than failing.
func (s *Service) Hydrate(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	if s.hydrated {
		return nil
	}
	s.items = s.Persistence.Load(ctx)
	s.hydrated = true
	return nil
}

// Reload rereads the store. Transient completion state is carried over by
// ID for items that survive, so an external write does not uncheck rows.
func (s *Service) Reload(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	completed := make(map[string]bool, len(s.items))
	for _, it := range s.items {
		if it.Completed {
			completed[it.ID] = true
		}
	}
	s.items = s.Persistence.Load(ctx)
	for _, it := range s.items {
		if completed[it.ID] {
			it.Completed = true
		}
	}
	s.hydrated = true
	return nil
}

// Items returns the ordered sequence. Callers must not reorder it.
func (s *Service) Items() []*item.Item {
	return s.items
}

// Find returns the first item whose ID or exact text matches ref, or nil.
func (s *Service) Find(ref string) *item.Item {
	if it := s.findByID(ref); it != nil {
		return it
	}
	return s.findByText(ref)
}

// Add appends a new item. The text is trimmed first; empty and duplicate
// texts are rejected before anything is touched.
func (s *Service) Add(ctx context.Context, text string) (*item.Item, error) {
	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if s.findByText(text) != nil {
		return nil, ErrDuplicateItem
	}
	it := item.New(text)
	s.items = append(s.items, it)
	if err := s.persist(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return nil, err
	}
	return it, nil
}

// Rename replaces the text of the item with the given ID. Renaming to the
// item's current text is a successful no-op; renaming onto another item's
// text is rejected so the uniqueness invariant holds across edits too.
func (s *Service) Rename(ctx context.Context, id, newText string) (*item.Item, error) {
	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil, ErrEmptyInput
	}
	it := s.findByID(id)
	if it == nil {
		return nil, ErrNotFound
	}
	if it.Text == newText {
		return it, nil
	}
	if other := s.findByText(newText); other != nil && other.ID != id {
		return nil, ErrDuplicateItem
	}
	old := it.Text
	it.Text = newText
	if err := s.persist(); err != nil {
		it.Text = old
		return nil, err
	}
	return it, nil
}

// Remove deletes the item with the given ID and persists the shortened
// sequence before returning, so a reload mid-removal never resurrects the
// item. Removing an unknown ID is a no-op, not an error.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.Hydrate(ctx); err != nil {
		return err
	}
	idx := -1
	for i, it := range s.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if err := s.persist(); err != nil {
		rest := append([]*item.Item{removed}, s.items[idx:]...)
		s.items = append(s.items[:idx], rest...)
		return err
	}
	return nil
}

// Toggle flips completion state in memory. Completion is presentation
// state only and is never persisted; every item loads pending.
func (s *Service) Toggle(id string) (*item.Item, error) {
	it := s.findByID(id)
	if it == nil {
		return nil, ErrNotFound
	}
	it.Completed = !it.Completed
	return it, nil
}

// Watch surfaces store change notifications so a UI can reload when the
// store is written behind its back. The channel closes when ctx ends.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

func (s *Service) persist() error {
	return s.Persistence.Save(s.items)
}

func (s *Service) findByID(id string) *item.Item {
	if id == "" {
		return nil
	}
	for _, it := range s.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (s *Service) findByText(text string) *item.Item {
	for _, it := range s.items {
		if it.Text == text {
			return it
		}
	}
	return nil
}
