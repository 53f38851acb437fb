package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/logicossoftware/go-wld"
)

// keyMap defines the explorer key bindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	FocusToggle    key.Binding
	FilterActivate key.Binding
	FilterClear    key.Binding

	Quit key.Binding
}

// defaultKeyMap is the built-in key binding set. Vim-style navigation
// alongside standard arrow keys.
var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// focusRegion identifies which part of the explorer owns keyboard
// input.
type focusRegion int

const (
	focusList focusRegion = iota
	focusDetail
	focusFilter
)

type theme struct {
	title    lipgloss.Style
	selected lipgloss.Style
	faint    lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		title:    lipgloss.NewStyle().Bold(true),
		selected: lipgloss.NewStyle().Reverse(true),
		faint:    lipgloss.NewStyle().Faint(true),
	}
}

// explorerModel is the interactive fragment browser: a list pane over
// the fragment table on the left, the selected fragment's fields on the
// right, and a substring filter over type names and fragment names.
type explorerModel struct {
	doc   *wld.Document
	title string
	keys  keyMap
	theme theme

	width  int
	height int
	ready  bool

	// rows holds the 1-based fragment indexes that pass the filter,
	// in document order.
	rows         []int
	cursor       int
	scrollOffset int

	filterText string
	focus      focusRegion
	priorFocus focusRegion

	detail viewport.Model
}

func newExplorer(doc *wld.Document, title string) explorerModel {
	m := explorerModel{
		doc:    doc,
		title:  title,
		keys:   defaultKeyMap,
		theme:  defaultTheme(),
		detail: viewport.New(0, 0),
	}
	m.rows = make([]int, len(doc.Fragments))
	for i := range doc.Fragments {
		m.rows[i] = i + 1
	}
	return m
}

func (m explorerModel) Init() tea.Cmd { return nil }

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// When the filter is active, route all input to it first.
		if m.focus == focusFilter {
			return m.handleFilterKeys(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.FocusToggle):
			if m.focus == focusList {
				m.focus = focusDetail
			} else {
				m.focus = focusList
			}

		case key.Matches(msg, m.keys.FilterActivate):
			m.priorFocus = m.focus
			m.focus = focusFilter

		case key.Matches(msg, m.keys.FilterClear):
			if m.filterText != "" {
				m.filterText = ""
				m.applyFilter()
				m.syncDetail()
			}

		default:
			if m.focus == focusList {
				m.handleListKeys(msg)
			} else {
				var cmd tea.Cmd
				m.detail, cmd = m.detail.Update(msg)
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizePanes()
		m.ensureCursorVisible()
		m.syncDetail()
	}
	return m, nil
}

// handleFilterKeys processes keystrokes while the filter input has
// focus. Esc clears then exits, Enter confirms and returns to the
// list, everything else edits the query.
func (m explorerModel) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// ctrl+c always quits. 'q' is a regular character here.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.filterText += "q"
		m.applyFilter()
		m.syncDetail()

	case key.Matches(msg, m.keys.FilterClear):
		if m.filterText != "" {
			m.filterText = ""
			m.applyFilter()
			m.syncDetail()
		} else {
			m.focus = m.priorFocus
		}

	case msg.Type == tea.KeyEnter:
		m.focus = focusList

	case msg.Type == tea.KeyBackspace:
		if len(m.filterText) > 0 {
			runes := []rune(m.filterText)
			m.filterText = string(runes[:len(runes)-1])
			m.applyFilter()
			m.syncDetail()
		}

	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		for _, r := range msg.Runes {
			m.filterText += string(r)
		}
		m.applyFilter()
		m.syncDetail()
	}
	return m, nil
}

func (m *explorerModel) handleListKeys(msg tea.KeyMsg) {
	prev := m.cursor

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.visibleHeight()
		if m.cursor < 0 {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.visibleHeight()
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0

	case key.Matches(msg, m.keys.End):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
	}

	m.ensureCursorVisible()
	if m.cursor != prev {
		m.syncDetail()
	}
}

func (m *explorerModel) ensureCursorVisible() {
	visible := m.visibleHeight()
	if visible <= 0 {
		return
	}
	maxOffset := len(m.rows) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// applyFilter rebuilds the visible row set from the filter text and
// resets the selection to the top.
func (m *explorerModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterText))
	m.rows = m.rows[:0]
	for i := range m.doc.Fragments {
		if query == "" || m.matches(i+1, query) {
			m.rows = append(m.rows, i+1)
		}
	}
	m.cursor = 0
	m.scrollOffset = 0
}

// matches reports whether the fragment at 1-based index i matches the
// query: by index, by type name, or by fragment name.
func (m *explorerModel) matches(i int, query string) bool {
	f := m.doc.At(i)
	if f == nil {
		return false
	}
	if strconv.Itoa(i) == query {
		return true
	}
	if strings.Contains(strings.ToLower(wld.TypeName(f.TypeCode())), query) {
		return true
	}
	if name, ok := m.doc.FragmentName(f); ok &&
		strings.Contains(strings.ToLower(name), query) {
		return true
	}
	return false
}

// syncDetail loads the selected fragment's description into the detail
// viewport and scrolls it back to the top.
func (m *explorerModel) syncDetail() {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		m.detail.SetContent("no fragment selected")
		return
	}
	m.detail.SetContent(describeFragment(m.doc, m.rows[m.cursor]))
	m.detail.GotoTop()
}

func (m *explorerModel) resizePanes() {
	m.detail.Width = m.width - m.listWidth() - 1
	if m.detail.Width < 10 {
		m.detail.Width = 10
	}
	m.detail.Height = m.visibleHeight()
}

// listWidth is the width of the list pane: a quarter of the terminal,
// clamped so short names stay readable and wide terminals leave room
// for the detail pane.
func (m explorerModel) listWidth() int {
	w := m.width / 4
	if w < 24 {
		w = 24
	}
	if w > 48 {
		w = 48
	}
	if w > m.width-12 {
		w = m.width - 12
	}
	if w < 0 {
		w = 0
	}
	return w
}

// visibleHeight is the number of list rows on screen: total height
// minus the header, separator, and help lines.
func (m explorerModel) visibleHeight() int {
	h := m.height - 3
	if h < 0 {
		h = 0
	}
	return h
}

func (m explorerModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(), m.renderDivider(), m.detail.View())
	sections = append(sections, content)

	sections = append(sections, m.theme.faint.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderHelp())
	return strings.Join(sections, "\n")
}

// renderHeader renders the top chrome line. The filter input replaces
// the title while it has focus so the layout doesn't shift.
func (m explorerModel) renderHeader() string {
	if m.focus == focusFilter {
		return m.theme.title.Render(" / " + m.filterText + "▎")
	}
	if m.filterText != "" {
		return m.theme.faint.Render(fmt.Sprintf(" %s  filter: %s (%d/%d)",
			m.title, m.filterText, len(m.rows), len(m.doc.Fragments)))
	}
	return m.theme.title.Render(fmt.Sprintf(" %s  %d fragments", m.title, len(m.doc.Fragments)))
}

func (m explorerModel) renderList() string {
	width := m.listWidth()
	visible := m.visibleHeight()
	rowStyle := lipgloss.NewStyle().Width(width).MaxWidth(width)
	selectedStyle := m.theme.selected.Width(width).MaxWidth(width)

	if len(m.rows) == 0 {
		return rowStyle.Render(m.theme.faint.Render(" no matches"))
	}

	var rows []string
	for i := m.scrollOffset; i < m.scrollOffset+visible && i < len(m.rows); i++ {
		idx := m.rows[i]
		f := m.doc.At(idx)
		label := fmt.Sprintf("%5d %s", idx, wld.TypeName(f.TypeCode()))
		if name, ok := m.doc.FragmentName(f); ok {
			label += " (" + name + ")"
		}
		label = truncate(label, width)
		if i == m.cursor {
			rows = append(rows, selectedStyle.Render(label))
		} else {
			rows = append(rows, rowStyle.Render(label))
		}
	}
	return strings.Join(rows, "\n")
}

func (m explorerModel) renderDivider() string {
	lines := make([]string, m.visibleHeight())
	for i := range lines {
		lines[i] = "│"
	}
	return m.theme.faint.Render(strings.Join(lines, "\n"))
}

func (m explorerModel) renderHelp() string {
	bindings := []key.Binding{
		m.keys.Down, m.keys.FocusToggle, m.keys.FilterActivate,
		m.keys.PageDown, m.keys.End, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.faint.Render(" " + strings.Join(parts, "  "))
}

// truncate cuts text to maxWidth visual columns, measuring with
// lipgloss so multi-byte characters count correctly.
func truncate(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
