// Package picker is the selection screen behind quick search: it lists the
// ranked matches for a query and returns the bookmark the user confirms.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hoard/internal/model"
	"hoard/internal/search"
)

// keyMap holds the picker's key bindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

// styles holds the picker's lipgloss styles, on the same grayscale plus teal
// palette as the main screens.
type styles struct {
	Title        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	URL          lipgloss.Style
	Notes        lipgloss.Style
	Help         lipgloss.Style
}

func defaultStyles() styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}

	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		URL: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(3),

		Notes: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true).
			PaddingLeft(3),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),
	}
}

// Picker selects one bookmark from a list of quick-search results.
type Picker struct {
	results   []search.Result
	query     string
	cursor    int
	selected  bool
	cancelled bool

	keys        keyMap
	styles      styles
	lastKeyWasG bool
}

// New creates a Picker over the given ranked results.
func New(results []search.Result, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		keys:    defaultKeyMap(),
		styles:  defaultStyles(),
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	// gg jumps to the top; any other key cancels a pending g.
	if key.Matches(keyMsg, p.keys.Top) {
		if p.lastKeyWasG {
			p.cursor = 0
			p.lastKeyWasG = false
		} else {
			p.lastKeyWasG = true
		}
		return p, nil
	}
	p.lastKeyWasG = false

	switch {
	case key.Matches(keyMsg, p.keys.Cancel):
		p.cancelled = true
		return p, tea.Quit

	case key.Matches(keyMsg, p.keys.Confirm):
		p.selected = true
		return p, tea.Quit

	case key.Matches(keyMsg, p.keys.Down):
		if p.cursor < len(p.results)-1 {
			p.cursor++
		}

	case key.Matches(keyMsg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}

	case key.Matches(keyMsg, p.keys.Bottom):
		if len(p.results) > 0 {
			p.cursor = len(p.results) - 1
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(p.styles.Title.Render(fmt.Sprintf("%d matches for %q", len(p.results), p.query)))
	b.WriteString("\n\n")

	for i, result := range p.results {
		item := p.styles.Item
		if i == p.cursor {
			item = p.styles.ItemSelected
		}
		b.WriteString(item.Render(result.Bookmark.Title))
		b.WriteString("\n")
		b.WriteString(p.styles.URL.Render(result.Bookmark.URL))
		b.WriteString("\n")
		if result.Bookmark.Notes != "" {
			b.WriteString(p.styles.Notes.Render(firstLine(result.Bookmark.Notes)))
			b.WriteString("\n")
		}
	}

	b.WriteString(p.styles.Help.Render(p.helpLine()))

	return b.String()
}

func (p Picker) helpLine() string {
	parts := make([]string, 0, 4)
	for _, binding := range []key.Binding{p.keys.Down, p.keys.Up, p.keys.Confirm, p.keys.Cancel} {
		h := binding.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// firstLine keeps multi-line notes to a single preview row.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// SelectedBookmark returns the confirmed bookmark, or nil when the picker
// was cancelled or nothing was confirmed.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return &p.results[p.cursor].Bookmark
	}
	return nil
}

// Cancelled reports whether the user backed out without choosing.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
