package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/tick/pkg/item"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("2f9a7c1e-8a37-4b85-9f2d-55f37e7a9f41")+2)
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" items")
	}
}

// Empty prints the reason nothing is listed, e.g. an empty store or a
// filter that matched nothing.
func (pp *PrettyPrint) Empty(reason string) {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Printf(" %s\n\n", reason)
}

func (pp *PrettyPrint) List(items ...*item.Item) {
	if len(items) == 0 {
		pp.Empty("none")
		return
	}

	t := color.New()
	d := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, it := range items {
		if pp.ShowID {
			_, _ = y.Print(it.ID)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(it.ID)))
		}
		bullet, text := it.Row()
		if it.Completed {
			_, _ = t.Printf("%s ", bullet)
			_, _ = d.Println(text)
			continue
		}
		_, _ = t.Printf("%s %s\n", bullet, text)
	}
	_, _ = t.Println("")
}
