package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dexhamter/tabload/internal/tui"
)

// Spinner is a progress indicator that settles into a success or failure
// line once the tracked operation reports back via SpinnerDoneMsg.
type Spinner struct {
	spinner spinner.Model
	message string
	done    bool
	success bool
	result  string
	err     error
}

// NewSpinner creates a spinner with the given in-progress message.
func NewSpinner(message string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = tui.SpinnerStyle

	return Spinner{
		spinner: s,
		message: message,
	}
}

// Init starts the spinner animation.
func (s Spinner) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update handles tick and completion messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	switch msg := msg.(type) {
	case SpinnerDoneMsg:
		s.done = true
		s.success = msg.Success
		s.result = msg.Result
		s.err = msg.Err
		return s, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View renders the spinner or the settled status line.
func (s Spinner) View() string {
	if s.done {
		if s.success {
			return tui.SuccessStyle.Render(tui.SymbolCheck + " " + s.result)
		}
		return tui.ErrorStyle.Render(tui.SymbolCross + " " + s.err.Error())
	}
	return s.spinner.View() + " " + s.message
}

// SpinnerDoneMsg signals that the tracked operation finished.
type SpinnerDoneMsg struct {
	Success bool
	Result  string
	Err     error
}

// SpinnerDone builds a success completion message.
func SpinnerDone(result string) SpinnerDoneMsg {
	return SpinnerDoneMsg{Success: true, Result: result}
}

// SpinnerFailed builds a failure completion message.
func SpinnerFailed(err error) SpinnerDoneMsg {
	return SpinnerDoneMsg{Success: false, Err: err}
}

// IsDone reports whether the operation finished.
func (s Spinner) IsDone() bool {
	return s.done
}

// IsSuccess reports whether the operation succeeded.
func (s Spinner) IsSuccess() bool {
	return s.success
}

// Error returns the failure cause, if any.
func (s Spinner) Error() error {
	return s.err
}
