package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/filter"
	"tableflip.dev/tick/pkg/item"
	"tableflip.dev/tick/pkg/store"
)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeEdit
	modeSearch
	modeConfirm
	modeHelp
)

// highlightFor is how long a just-added row stays highlighted. Cosmetic
// only; expiry never touches collection state.
const highlightFor = 2 * time.Second

// row is one visible list entry. The title is prerendered so visibility
// and styling decisions all happen in one place (applyFilters).
type row struct {
	it    *item.Item
	title string
}

func (r row) Title() string       { return r.title }
func (r row) Description() string { return "" }
func (r row) FilterValue() string { return r.it.Text }

// Model contains UI state. The authoritative item sequence lives in the
// Service; the model only holds derived rows and transient interaction
// state, all rebuilt from scratch after every change.
type Model struct {
	svc *app.Service
	ctx context.Context

	mode mode

	rows  list.Model
	input textinput.Model

	filter filter.State

	// edit state, valid only in modeEdit
	editID   string
	editOrig string

	// pending delete, valid only in modeConfirm
	confirmID   string
	confirmText string

	highlightID string

	status string

	termWidth  int
	termHeight int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

const normalHelp = "NORMAL: j/k move, o add, i edit, x done, d delete, f filter, / search, ? help, q quit"

// New creates a new UI model backed by the Service. The Service must be
// hydrated before the first View call so the stored sequence paints
// immediately.
func New(svc *app.Service) Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 80, 20)
	l.Title = "tick"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "Type here"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	m := Model{
		svc:    svc,
		ctx:    context.Background(),
		mode:   modeNormal,
		rows:   l,
		input:  ti,
		status: normalHelp,
	}
	m.applyFilters()
	return m
}

// Init starts the store watcher; the item sequence is already hydrated.
func (m Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.svc)
}

// messages
type errMsg struct{ err error }
type highlightExpiredMsg struct{ id string }

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}
type watchEventMsg struct{}
type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if _, ok := <-ch; ok {
			return watchEventMsg{}
		}
		return watchStoppedMsg{}
	}
}

func highlightCmd(id string) tea.Cmd {
	return tea.Tick(highlightFor, func(time.Time) tea.Msg {
		return highlightExpiredMsg{id: id}
	})
}

// applyFilters recomputes row visibility from scratch: one pass over the
// authoritative sequence, both predicates per item, no incremental state.
// Every structural change and every filter input change funnels through
// here, which is what keeps the rendered list and the collection in step.
func (m *Model) applyFilters() {
	visible := m.filter.Apply(m.svc.Items())
	items := make([]list.Item, 0, len(visible))
	for _, it := range visible {
		items = append(items, row{it: it, title: m.renderTitle(it)})
	}
	m.rows.SetItems(items)
	if len(items) > 0 && m.rows.Index() >= len(items) {
		m.rows.Select(len(items) - 1)
	}
}

func (m *Model) renderTitle(it *item.Item) string {
	title := fmt.Sprintf("%s  %s", it.Bullet().String(), it.Text)
	if it.Completed {
		title = lipgloss.NewStyle().Faint(true).Strikethrough(true).Render(title)
	}
	if m.highlightID != "" && it.ID == m.highlightID {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Render(title)
	}
	return title
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case highlightExpiredMsg:
		if m.highlightID == msg.id {
			m.highlightID = ""
			m.applyFilters()
		}
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
			break
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		if err := m.svc.Reload(m.ctx); err != nil {
			m.status = "ERR: " + err.Error()
		} else {
			m.applyFilters()
		}
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.watchCh = nil
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
				m.status = normalHelp
				skipListRouting = true
			}
		case modeConfirm:
			switch msg.String() {
			case "y", "enter":
				// Persisted removal happens inside Remove, before the
				// row disappears from the visual list below.
				if err := m.svc.Remove(m.ctx, m.confirmID); err != nil {
					m.status = "ERR: " + err.Error()
				} else {
					m.status = fmt.Sprintf("Deleted %q", m.confirmText)
				}
				m.mode = modeNormal
				m.confirmID = ""
				m.confirmText = ""
				m.applyFilters()
				skipListRouting = true
			case "n", "esc", "q":
				m.mode = modeNormal
				m.confirmID = ""
				m.confirmText = ""
				m.status = "Delete cancelled"
				skipListRouting = true
			}
		case modeInsert:
			switch msg.String() {
			case "enter":
				it, err := m.svc.Add(m.ctx, m.input.Value())
				if err != nil {
					// Leave the input as typed so the user can fix it.
					m.status = "ERR: " + err.Error()
					skipListRouting = true
					break
				}
				m.highlightID = it.ID
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = fmt.Sprintf("Added %q", it.Text)
				m.applyFilters()
				cmds = append(cmds, highlightCmd(it.ID))
				skipListRouting = true
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Add cancelled"
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeEdit:
			switch msg.String() {
			case "enter":
				m.commitEdit()
				skipListRouting = true
			case "esc":
				m.cancelEdit("Edit cancelled")
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeSearch:
			switch msg.String() {
			case "enter":
				m.mode = modeNormal
				m.input.Blur()
				if m.filter.Term == "" {
					m.status = normalHelp
				} else {
					m.status = fmt.Sprintf("Searching %q, / to change, esc to clear", m.filter.Term)
				}
				skipListRouting = true
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.filter.Term = ""
				m.status = "Search cleared"
				m.applyFilters()
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
				// Visibility tracks every keystroke.
				m.filter.Term = m.input.Value()
				m.applyFilters()
			}
		case modeNormal:
			switch msg.String() {
			case "j", "down":
				m.rows.CursorDown()
				skipListRouting = true
			case "k", "up":
				m.rows.CursorUp()
				skipListRouting = true
			case "g":
				m.rows.Select(0)
				skipListRouting = true
			case "G":
				if n := len(m.rows.Items()); n > 0 {
					m.rows.Select(n - 1)
				}
				skipListRouting = true

			// add
			case "o", "O":
				m.mode = modeInsert
				m.input.Placeholder = "New item"
				m.input.SetValue("")
				if cmd := m.input.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				cmds = append(cmds, textinput.Blink)
				skipListRouting = true

			// edit
			case "i":
				if r := m.currentRow(); r != nil {
					m.beginEdit(r, &cmds)
				}
				skipListRouting = true

			// complete toggle, visual only
			case "x":
				if r := m.currentRow(); r != nil {
					if it, err := m.svc.Toggle(r.it.ID); err != nil {
						m.status = "ERR: " + err.Error()
					} else if it.Completed {
						m.status = fmt.Sprintf("Done %q", it.Text)
					} else {
						m.status = fmt.Sprintf("Pending %q", it.Text)
					}
					m.applyFilters()
				}
				skipListRouting = true

			// delete, behind a confirmation
			case "d":
				if r := m.currentRow(); r != nil {
					m.mode = modeConfirm
					m.confirmID = r.it.ID
					m.confirmText = r.it.Text
					m.status = "Confirm delete"
				}
				skipListRouting = true

			// status filter cycles all -> completed -> incomplete
			case "f":
				m.filter.Status = m.filter.Status.Next()
				m.status = fmt.Sprintf("Filter: %s", m.filter.Status)
				m.applyFilters()
				skipListRouting = true

			// search
			case "/":
				m.mode = modeSearch
				m.input.Placeholder = "Search"
				m.input.SetValue(m.filter.Term)
				m.input.CursorEnd()
				if cmd := m.input.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				cmds = append(cmds, textinput.Blink)
				skipListRouting = true

			case "?":
				m.mode = modeHelp
				skipListRouting = true
			case "r":
				if err := m.svc.Reload(m.ctx); err != nil {
					m.status = "ERR: " + err.Error()
				} else {
					m.status = "Reloaded"
					m.applyFilters()
				}
				skipListRouting = true
			case "q", "ctrl+c":
				if m.watchCancel != nil {
					m.watchCancel()
				}
				cmds = append(cmds, tea.Quit)
				skipListRouting = true
			}
		}
	}

	if m.mode == modeNormal && !skipListRouting {
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) currentRow() *row {
	if len(m.rows.Items()) == 0 {
		return nil
	}
	sel := m.rows.SelectedItem()
	if sel == nil {
		return nil
	}
	r, _ := sel.(row)
	return &r
}

// beginEdit swaps the selected row into its editing state: the input is
// prefilled with the current text and focused with the cursor at the end.
func (m *Model) beginEdit(r *row, cmds *[]tea.Cmd) {
	m.mode = modeEdit
	m.editID = r.it.ID
	m.editOrig = r.it.Text
	m.input.Placeholder = "Edit item"
	m.input.SetValue(r.it.Text)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

// commitEdit applies the edited text. Empty and unchanged text cancel the
// edit; a rejected rename reverts to the original text with the reason in
// the status line, never committing bad state.
func (m *Model) commitEdit() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || text == m.editOrig {
		m.cancelEdit("Edit cancelled")
		return
	}
	if _, err := m.svc.Rename(m.ctx, m.editID, text); err != nil {
		m.cancelEdit("ERR: " + err.Error())
		return
	}
	m.endEdit(fmt.Sprintf("Renamed to %q", text))
}

func (m *Model) cancelEdit(status string) {
	m.endEdit(status)
}

func (m *Model) endEdit(status string) {
	m.mode = modeNormal
	m.editID = ""
	m.editOrig = ""
	m.input.Reset()
	m.input.Blur()
	m.status = status
	m.applyFilters()
}

// View renders the list and optional input/confirm/help overlays
func (m Model) View() string {
	var b strings.Builder
	if len(m.rows.Items()) == 0 {
		// The list widget paints its own generic placeholder when it is
		// empty; render only the contextual message so there is a single
		// indicator of why nothing is visible.
		empty := lipgloss.NewStyle().Faint(true).Italic(true).Render(m.filter.EmptyMessage())
		b.WriteString(empty)
	} else {
		b.WriteString(m.rows.View())
	}

	switch m.mode {
	case modeInsert:
		b.WriteString("\n\nAdd: " + m.input.View())
	case modeEdit:
		b.WriteString("\n\nEdit: " + m.input.View())
	case modeSearch:
		b.WriteString("\n\nSearch: " + m.input.View())
	case modeConfirm:
		lines := []string{
			fmt.Sprintf("Delete %q?", m.confirmText),
			"",
			"y: delete   n: keep",
		}
		panelStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2)
		b.WriteString("\n\n" + panelStyle.Render(strings.Join(lines, "\n")))
	case modeHelp:
		help := "Keys: j/k move, g/G top/bottom, o add, i edit, x toggle done, d delete, f cycle filter, / search, r reload, q quit"
		b.WriteString("\n\n" + lipgloss.NewStyle().Italic(true).Render(help))
	}

	modeStr := map[mode]string{
		modeNormal:  "NORMAL",
		modeInsert:  "INSERT",
		modeEdit:    "EDIT",
		modeSearch:  "SEARCH",
		modeConfirm: "CONFIRM",
		modeHelp:    "HELP",
	}[m.mode]
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(
		fmt.Sprintf("[%s] %s%s", modeStr, m.status, m.filterSuffix()))

	return b.String() + "\n\n" + status
}

func (m Model) filterSuffix() string {
	if !m.filter.Active() {
		return ""
	}
	if m.filter.Term != "" {
		return fmt.Sprintf(" (filter: %s, search: %q)", m.filter.Status, m.filter.Term)
	}
	return fmt.Sprintf(" (filter: %s)", m.filter.Status)
}

// applySizes recalculates the list size based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	width := m.termWidth - 2
	if width < 20 {
		width = 20
	}
	// Leave room for the input/status footer lines.
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.rows.SetSize(width, height)
}

// Run hydrates the Service and launches the UI. Hydration happens before
// the program starts so the first paint already shows the stored list.
func Run(svc *app.Service) error {
	if err := svc.Hydrate(context.Background()); err != nil {
		return err
	}
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
