package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tick/pkg/item"
)

// itemsKey is the single namespaced key the whole sequence lives under.
const itemsKey = "items"

// Persistence is the persistent key-value capability behind the item list.
// Save replaces the entire sequence on every call; partial updates do not
// exist, so a reader always sees a sequence that was written whole.
type Persistence interface {
	Load(ctx context.Context) []*item.Item
	Save(items []*item.Item) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// record is the persisted shape of one item. Completion state is absent on
// purpose: it does not survive a reload.
type record struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Load returns the stored sequence in insertion order. A missing key or a
// payload that does not parse yields an empty sequence, never an error; the
// next Save overwrites whatever was there.
func (p *persistence) Load(_ context.Context) []*item.Item {
	val, err := p.d.Read(itemsKey)
	if err != nil {
		return nil
	}

	var recs []record
	if err := json.Unmarshal(val, &recs); err != nil {
		// Older payloads were a bare array of strings. Accept them and
		// mint IDs on the way in.
		var texts []string
		if err2 := json.Unmarshal(val, &texts); err2 != nil {
			fmt.Fprintf(os.Stderr, "store: %s unreadable, starting empty: %s\n", itemsKey, err)
			return nil
		}
		items := make([]*item.Item, 0, len(texts))
		for _, t := range texts {
			items = append(items, item.New(t))
		}
		return items
	}

	items := make([]*item.Item, 0, len(recs))
	for _, r := range recs {
		it := &item.Item{ID: r.ID, Text: r.Text}
		if it.ID == "" {
			it = item.New(r.Text)
		}
		items = append(items, it)
	}
	return items
}

// Save writes the whole sequence under the single items key.
func (p *persistence) Save(items []*item.Item) error {
	recs := make([]record, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		recs = append(recs, record{ID: it.ID, Text: it.Text})
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("store: encode items: %w", err)
	}
	if err := p.d.Write(itemsKey, data); err != nil {
		return fmt.Errorf("store: write items: %w", err)
	}
	return nil
}
