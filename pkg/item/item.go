package item

import (
	"fmt"

	"github.com/google/uuid"

	"tableflip.dev/tick/pkg/glyph"
)

// Item is a single list entry. The ID is assigned once at creation and is
// the only thing lookups key off; Text can change freely under it.
// Completed is session state and never persisted.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"-"`
}

func New(text string) *Item {
	return &Item{
		ID:   uuid.NewString(),
		Text: text,
	}
}

func (i *Item) Bullet() glyph.Bullet {
	if i.Completed {
		return glyph.Done
	}
	return glyph.Pending
}

func (i *Item) Row() (string, string) {
	return i.Bullet().String(), i.Text
}

func (i *Item) String() string {
	switch {
	case i.Completed:
		return fmt.Sprintf("%s  %s", glyph.Done.String(), glyph.Strike(i.Text))
	default:
		return fmt.Sprintf("%s  %s", glyph.Pending.String(), i.Text)
	}
}
