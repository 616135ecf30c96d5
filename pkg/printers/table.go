package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tick/pkg/glyph"
	"tableflip.dev/tick/pkg/item"
)

// Table prints items in aligned columns; used when IDs are shown so the
// long ID column does not ruin the layout.
func (pp *PrettyPrint) Table(title string, items ...*item.Item) {
	if len(items) == 0 {
		pp.Empty("none")
		return
	}

	fmt.Println(glyph.Underline(glyph.Bold(title)))

	tbl := uitable.New()
	tbl.Separator = " "

	for _, it := range items {
		bullet, text := it.Row()
		if pp.ShowID {
			tbl.AddRow(it.ID, bullet, text)
			continue
		}
		tbl.AddRow(bullet, text)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}
