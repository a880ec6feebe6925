package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dexhamter/tabload/internal/tui"
)

// Option is a single selectable entry.
type Option struct {
	Label       string
	Description string
	Value       string
}

// Selector renders a vertical option list with a movable cursor. It is meant
// to be embedded in a larger model: the parent forwards key messages and
// inspects Submitted/Cancelled after each update.
type Selector struct {
	title     string
	options   []Option
	cursor    int
	selected  int
	showHelp  bool
	keys      tui.KeyMap
	submitted bool
	cancelled bool
}

// NewSelector creates a selector with the cursor on the first option.
func NewSelector(title string, options []Option) Selector {
	return Selector{
		title:    title,
		options:  options,
		selected: -1,
		showHelp: true,
		keys:     tui.DefaultKeyMap(),
	}
}

// WithCursor places the cursor on the given option.
func (s Selector) WithCursor(cursor int) Selector {
	if cursor >= 0 && cursor < len(s.options) {
		s.cursor = cursor
	}
	return s
}

// WithShowHelp enables or disables the help line.
func (s Selector) WithShowHelp(show bool) Selector {
	s.showHelp = show
	return s
}

// Update handles a message and returns the new selector state.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(keyMsg, s.keys.Down):
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case key.Matches(keyMsg, s.keys.Select):
		s.selected = s.cursor
		s.submitted = true
	case key.Matches(keyMsg, s.keys.Back), key.Matches(keyMsg, s.keys.Quit):
		s.cancelled = true
	}
	return s, nil
}

// View renders the option list.
func (s Selector) View() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render(s.title))
	b.WriteString("\n\n")

	for i, opt := range s.options {
		cursor := "  "
		style := tui.UnselectedStyle
		symbol := tui.SymbolUnselected

		if i == s.cursor {
			cursor = ""
			style = tui.SelectedStyle
			symbol = tui.SymbolSelected
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + opt.Label))
		b.WriteString("\n")
		if opt.Description != "" {
			b.WriteString(tui.DescriptionStyle.Render(opt.Description))
			b.WriteString("\n")
		}
	}

	if s.showHelp {
		b.WriteString(tui.HelpStyle.Render("\n" + s.keys.HelpText()))
	}

	return b.String()
}

// Cursor returns the current cursor position.
func (s Selector) Cursor() int {
	return s.cursor
}

// Selected returns the chosen option index, or -1 before submission.
func (s Selector) Selected() int {
	return s.selected
}

// SelectedOption returns the chosen option, or nil before submission.
func (s Selector) SelectedOption() *Option {
	if s.selected >= 0 && s.selected < len(s.options) {
		return &s.options[s.selected]
	}
	return nil
}

// Value returns the value of the chosen option.
func (s Selector) Value() string {
	if opt := s.SelectedOption(); opt != nil {
		return opt.Value
	}
	return ""
}

// Submitted reports whether the user confirmed a choice.
func (s Selector) Submitted() bool {
	return s.submitted
}

// Cancelled reports whether the user backed out.
func (s Selector) Cancelled() bool {
	return s.cancelled
}
