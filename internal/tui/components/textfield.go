package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dexhamter/tabload/internal/tui"
)

// TextField is a labeled text input.
type TextField struct {
	label     string
	input     textinput.Model
	focused   bool
	required  bool
	validator func(string) error
	err       error
}

// NewTextField creates a text field with the given label and placeholder.
func NewTextField(label, placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40

	return TextField{
		label: label,
		input: ti,
	}
}

// WithWidth sets the rendered input width.
func (t TextField) WithWidth(width int) TextField {
	t.input.Width = width
	return t
}

// WithCharLimit caps the input length.
func (t TextField) WithCharLimit(limit int) TextField {
	t.input.CharLimit = limit
	return t
}

// WithRequired marks the field as required for Validate.
func (t TextField) WithRequired(required bool) TextField {
	t.required = required
	return t
}

// WithValidator sets a validation function run by Validate.
func (t TextField) WithValidator(fn func(string) error) TextField {
	t.validator = fn
	return t
}

// WithValue sets the initial value.
func (t TextField) WithValue(value string) TextField {
	t.input.SetValue(value)
	return t
}

// WithPassword masks the typed input.
func (t TextField) WithPassword() TextField {
	t.input.EchoMode = textinput.EchoPassword
	t.input.EchoCharacter = '•'
	return t
}

// Focus gives the field keyboard focus.
func (t *TextField) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

// Blur removes keyboard focus.
func (t *TextField) Blur() {
	t.focused = false
	t.input.Blur()
}

// IsFocused reports whether the field has focus.
func (t TextField) IsFocused() bool {
	return t.focused
}

// Update forwards a message to the underlying input.
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// View renders the label and input.
func (t TextField) View() string {
	var b strings.Builder

	b.WriteString(tui.InputLabelStyle.Render(t.label))
	b.WriteString("\n")

	style := tui.InputStyle
	if t.focused {
		style = tui.FocusedInputStyle
	}
	b.WriteString(style.Render(t.input.View()))

	if t.err != nil {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(t.err.Error()))
	}

	return b.String()
}

// Value returns the current value.
func (t TextField) Value() string {
	return t.input.Value()
}

// SetValue sets the value.
func (t *TextField) SetValue(v string) {
	t.input.SetValue(v)
}

// Error returns the last validation error.
func (t TextField) Error() error {
	return t.err
}

// Validate runs the required check and any validator.
func (t *TextField) Validate() error {
	if t.required && strings.TrimSpace(t.input.Value()) == "" {
		t.err = ErrFieldRequired
		return t.err
	}
	if t.validator != nil {
		t.err = t.validator(t.input.Value())
		return t.err
	}
	t.err = nil
	return nil
}

// ErrFieldRequired is returned when a required field is empty.
var ErrFieldRequired = fieldError("this field is required")

type fieldError string

func (e fieldError) Error() string { return string(e) }
