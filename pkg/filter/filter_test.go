package filter

import (
	"testing"

	"tableflip.dev/tick/pkg/item"
)

func testItems() []*item.Item {
	milk := item.New("Buy milk")
	dog := item.New("Walk dog")
	dog.Completed = true
	return []*item.Item{milk, dog}
}

func texts(items []*item.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

func TestStatusCycle(t *testing.T) {
	if StatusAll.Next() != StatusCompleted {
		t.Fatalf("all must cycle to completed")
	}
	if StatusCompleted.Next() != StatusIncomplete {
		t.Fatalf("completed must cycle to incomplete")
	}
	if StatusIncomplete.Next() != StatusAll {
		t.Fatalf("incomplete must cycle back to all")
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		err  bool
	}{
		{"", StatusAll, false},
		{"all", StatusAll, false},
		{"Completed", StatusCompleted, false},
		{"done", StatusCompleted, false},
		{" incomplete ", StatusIncomplete, false},
		{"pending", StatusIncomplete, false},
		{"bogus", StatusAll, true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.err != (err != nil) {
			t.Fatalf("ParseStatus(%q) error = %v", tc.in, err)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseStatus(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFilterComposition(t *testing.T) {
	items := testItems()

	got := State{Status: StatusCompleted, Term: "dog"}.Apply(items)
	if len(got) != 1 || got[0].Text != "Walk dog" {
		t.Fatalf("completed+dog: got %v, want [Walk dog]", texts(got))
	}

	st := State{Status: StatusIncomplete, Term: "dog"}
	if got := st.Apply(items); len(got) != 0 {
		t.Fatalf("incomplete+dog: got %v, want none", texts(got))
	}
	if st.EmptyMessage() != `no items match "dog"` {
		t.Fatalf("unexpected empty message %q", st.EmptyMessage())
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	items := testItems()

	for _, term := range []string{"MILK", "milk", "uy mi"} {
		got := State{Term: term}.Apply(items)
		if len(got) != 1 || got[0].Text != "Buy milk" {
			t.Fatalf("search %q: got %v, want [Buy milk]", term, texts(got))
		}
	}
}

func TestEmptyTermMatchesEverything(t *testing.T) {
	items := testItems()

	got := State{}.Apply(items)
	if len(got) != len(items) {
		t.Fatalf("empty state must show all items, got %v", texts(got))
	}
}

func TestStatusPredicate(t *testing.T) {
	items := testItems()

	got := State{Status: StatusCompleted}.Apply(items)
	if len(got) != 1 || got[0].Text != "Walk dog" {
		t.Fatalf("completed: got %v", texts(got))
	}
	got = State{Status: StatusIncomplete}.Apply(items)
	if len(got) != 1 || got[0].Text != "Buy milk" {
		t.Fatalf("incomplete: got %v", texts(got))
	}
}

func TestActiveAndEmptyMessages(t *testing.T) {
	if (State{}).Active() {
		t.Fatalf("zero state must not be active")
	}
	if !(State{Status: StatusCompleted}).Active() || !(State{Term: "x"}).Active() {
		t.Fatalf("narrowing state must be active")
	}

	if msg := (State{}).EmptyMessage(); msg != "nothing here yet" {
		t.Fatalf("bare empty message: %q", msg)
	}
	if msg := (State{Status: StatusCompleted}).EmptyMessage(); msg != "no completed items" {
		t.Fatalf("status empty message: %q", msg)
	}
	if msg := (State{Status: StatusCompleted, Term: "x"}).EmptyMessage(); msg != `no items match "x"` {
		t.Fatalf("search must win the empty message: %q", msg)
	}
}
