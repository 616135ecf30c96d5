// Package filter derives row visibility from two independent inputs: the
// three-way completion status filter and the free-text search term.
// Visibility is recomputed from scratch on every input change; there is no
// incremental state to fall out of sync.
package filter

import (
	"fmt"
	"strings"

	"tableflip.dev/tick/pkg/item"
)

type Status int

const (
	StatusAll Status = iota
	StatusCompleted
	StatusIncomplete
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusIncomplete:
		return "incomplete"
	default:
		return "all"
	}
}

// Next cycles all -> completed -> incomplete -> all.
func (s Status) Next() Status {
	switch s {
	case StatusAll:
		return StatusCompleted
	case StatusCompleted:
		return StatusIncomplete
	default:
		return StatusAll
	}
}

func ParseStatus(v string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return StatusAll, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "incomplete", "pending", "todo":
		return StatusIncomplete, nil
	}
	return StatusAll, fmt.Errorf("filter: unknown status %q", v)
}

// State is the pair of visibility inputs. Both are transient: neither is
// ever persisted.
type State struct {
	Status Status
	Term   string
}

// Matches reports whether the item passes both predicates. The search is a
// case-insensitive substring match; an empty term matches everything.
func (st State) Matches(it *item.Item) bool {
	if it == nil {
		return false
	}
	switch st.Status {
	case StatusCompleted:
		if !it.Completed {
			return false
		}
	case StatusIncomplete:
		if it.Completed {
			return false
		}
	}
	if st.Term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Text), strings.ToLower(st.Term))
}

// Apply returns the visible subset in input order: one full pass, both
// predicates per item.
func (st State) Apply(items []*item.Item) []*item.Item {
	visible := make([]*item.Item, 0, len(items))
	for _, it := range items {
		if st.Matches(it) {
			visible = append(visible, it)
		}
	}
	return visible
}

// Active reports whether any predicate narrows the view.
func (st State) Active() bool {
	return st.Status != StatusAll || st.Term != ""
}

// EmptyMessage names why nothing is visible. The search term wins when
// both inputs narrow the view.
func (st State) EmptyMessage() string {
	if st.Term != "" {
		return fmt.Sprintf("no items match %q", st.Term)
	}
	if st.Status != StatusAll {
		return fmt.Sprintf("no %s items", st.Status)
	}
	return "nothing here yet"
}
