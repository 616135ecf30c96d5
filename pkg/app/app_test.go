package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tableflip.dev/tick/pkg/item"
	"tableflip.dev/tick/pkg/store"
)

// memoryPersistence mimics the diskv store: only ID and text survive a
// round trip, and every Save replaces the whole sequence.
type memoryPersistence struct {
	mu       sync.Mutex
	seq      []*item.Item
	saves    int
	failNext bool
}

func (m *memoryPersistence) Load(_ context.Context) []*item.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*item.Item, 0, len(m.seq))
	for _, it := range m.seq {
		out = append(out, &item.Item{ID: it.ID, Text: it.Text})
	}
	return out
}

func (m *memoryPersistence) Save(items []*item.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return errors.New("save failed")
	}
	m.saves++
	m.seq = make([]*item.Item, 0, len(items))
	for _, it := range items {
		m.seq = append(m.seq, &item.Item{ID: it.ID, Text: it.Text})
	}
	return nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (m *memoryPersistence) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.seq))
	for _, it := range m.seq {
		out = append(out, it.Text)
	}
	return out
}

func newService(mp *memoryPersistence) *Service {
	return &Service{Persistence: mp}
}

func mustAdd(t *testing.T, s *Service, text string) *item.Item {
	t.Helper()
	it, err := s.Add(context.Background(), text)
	if err != nil {
		t.Fatalf("add %q: %v", text, err)
	}
	return it
}

func TestAddRoundTrip(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	for _, text := range []string{"Buy milk", "Walk dog", "Read"} {
		mustAdd(t, s, text)
	}

	reloaded := newService(mp)
	if err := reloaded.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	got := reloaded.Items()
	if len(got) != 3 {
		t.Fatalf("expected 3 items after reload, got %d", len(got))
	}
	for i, want := range []string{"Buy milk", "Walk dog", "Read"} {
		if got[i].Text != want {
			t.Fatalf("item %d: got %q, want %q (insertion order must survive)", i, got[i].Text, want)
		}
	}
}

func TestAddRejectsEmptyInput(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := s.Add(ctx, text); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("add %q: got %v, want ErrEmptyInput", text, err)
		}
	}
	if len(s.Items()) != 0 || mp.saves != 0 {
		t.Fatalf("rejected adds must not mutate the sequence or persist")
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	mustAdd(t, s, "Buy milk")
	saves := mp.saves

	if _, err := s.Add(ctx, "Buy milk"); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("got %v, want ErrDuplicateItem", err)
	}
	if _, err := s.Add(ctx, "  Buy milk  "); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("trimmed duplicate: got %v, want ErrDuplicateItem", err)
	}
	if len(s.Items()) != 1 || mp.saves != saves {
		t.Fatalf("duplicate add must leave the sequence unchanged")
	}
}

func TestAddTrimsText(t *testing.T) {
	mp := &memoryPersistence{}
	s := newService(mp)

	it := mustAdd(t, s, "  Walk dog  ")
	if it.Text != "Walk dog" {
		t.Fatalf("got %q, want trimmed text", it.Text)
	}
}

func TestRenameNoOpDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	it := mustAdd(t, s, "Buy milk")
	saves := mp.saves

	got, err := s.Rename(ctx, it.ID, "  Buy milk ")
	if err != nil {
		t.Fatalf("no-op rename must succeed: %v", err)
	}
	if got.Text != "Buy milk" {
		t.Fatalf("text changed on no-op rename: %q", got.Text)
	}
	if mp.saves != saves {
		t.Fatalf("no-op rename must not write the store")
	}
}

func TestRenameValidation(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	a := mustAdd(t, s, "a")
	mustAdd(t, s, "b")

	if _, err := s.Rename(ctx, a.ID, "   "); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
	if _, err := s.Rename(ctx, "no-such-id", "c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := s.Rename(ctx, a.ID, "b"); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("renaming onto another item: got %v, want ErrDuplicateItem", err)
	}
	if a.Text != "a" {
		t.Fatalf("failed rename must leave the text alone, got %q", a.Text)
	}
}

func TestRenamePersists(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	it := mustAdd(t, s, "a")
	if _, err := s.Rename(ctx, it.ID, "c"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	got := mp.texts()
	if len(got) != 1 || got[0] != "c" {
		t.Fatalf("store not updated after rename: %v", got)
	}
}

func TestRemoveConsistency(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	a := mustAdd(t, s, "a")
	mustAdd(t, s, "b")

	if err := s.Remove(ctx, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	reloaded := newService(mp)
	if err := reloaded.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	got := reloaded.Items()
	if len(got) != 1 || got[0].Text != "b" {
		t.Fatalf("removed item resurrected after reload: %v", mp.texts())
	}

	saves := mp.saves
	if err := s.Remove(ctx, "no-such-id"); err != nil {
		t.Fatalf("removing a missing item must be a no-op, got %v", err)
	}
	if mp.saves != saves || len(s.Items()) != 1 {
		t.Fatalf("no-op remove must not touch sequence or store")
	}
}

func TestToggleIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	it := mustAdd(t, s, "a")
	saves := mp.saves

	toggled, err := s.Toggle(it.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed {
		t.Fatalf("expected completed after toggle")
	}
	if mp.saves != saves {
		t.Fatalf("toggle must not write the store")
	}

	reloaded := newService(mp)
	if err := reloaded.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if reloaded.Items()[0].Completed {
		t.Fatalf("completion must not survive a reload")
	}

	if _, err := s.Toggle("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestReloadKeepsCompletionForSurvivors(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	a := mustAdd(t, s, "a")
	if _, err := s.Toggle(a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// Another process appends an item.
	other := newService(mp)
	mustAdd(t, other, "b")

	if err := s.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items after reload, got %d", len(items))
	}
	if !items[0].Completed {
		t.Fatalf("reload dropped transient completion for surviving item")
	}
	if items[1].Completed {
		t.Fatalf("new item must load pending")
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	a := mustAdd(t, s, "a")

	mp.failNext = true
	if _, err := s.Add(ctx, "b"); err == nil {
		t.Fatalf("expected save failure to propagate")
	}
	if len(s.Items()) != 1 {
		t.Fatalf("failed add must not leave the item in the sequence")
	}

	mp.failNext = true
	if _, err := s.Rename(ctx, a.ID, "z"); err == nil {
		t.Fatalf("expected save failure to propagate")
	}
	if a.Text != "a" {
		t.Fatalf("failed rename must restore the old text, got %q", a.Text)
	}

	mp.failNext = true
	if err := s.Remove(ctx, a.ID); err == nil {
		t.Fatalf("expected save failure to propagate")
	}
	if len(s.Items()) != 1 || s.Items()[0].Text != "a" {
		t.Fatalf("failed remove must restore the sequence")
	}
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	mp := &memoryPersistence{}
	s := newService(mp)

	mustAdd(t, s, "A")
	b := mustAdd(t, s, "B")

	if _, err := s.Add(ctx, "A"); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("second A: got %v, want ErrDuplicateItem", err)
	}
	if _, err := s.Rename(ctx, b.ID, "C"); err != nil {
		t.Fatalf("rename B->C: %v", err)
	}
	if err := s.Remove(ctx, s.Find("A").ID); err != nil {
		t.Fatalf("remove A: %v", err)
	}

	got := mp.texts()
	if len(got) != 1 || got[0] != "C" {
		t.Fatalf("final persisted sequence: got %v, want [C]", got)
	}
}
