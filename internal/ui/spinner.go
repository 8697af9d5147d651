package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samsaffron/vidbrief/internal/insight"
)

// ErrCancelled is returned by RunWithSpinner when the user presses Esc or
// Ctrl-C while a generation is in flight.
var ErrCancelled = errors.New("cancelled")

// getTTY opens /dev/tty for direct terminal access (bypasses redirections)
func getTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

// spinnerModel is the bubbletea model for the loading spinner
type spinnerModel struct {
	spinner   spinner.Model
	label     string
	cancel    context.CancelFunc
	cancelled bool
	result    *generateMsg
	dimStyle  lipgloss.Style
}

type generateMsg struct {
	result *insight.Result
	err    error
}

func newSpinnerModel(label string, cancel context.CancelFunc, tty *os.File) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	r := lipgloss.NewRenderer(tty)
	s.Style = r.NewStyle().Foreground(currentTheme.Spinner)
	return spinnerModel{
		spinner:  s,
		label:    label,
		cancel:   cancel,
		dimStyle: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEscape || msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
	case generateMsg:
		m.result = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	return m.spinner.View() + " " + m.label + " " + m.dimStyle.Render("(esc to cancel)")
}

// RunWithSpinner shows a spinner while fn runs a blocking generation.
// Without a TTY, or in debug mode (so provider dumps aren't garbled), fn
// runs directly with no spinner.
func RunWithSpinner(ctx context.Context, label string, debug bool, fn func(context.Context) (*insight.Result, error)) (*insight.Result, error) {
	// Create cancellable context
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Get tty for proper rendering
	tty, ttyErr := getTTY()
	if ttyErr != nil {
		return fn(ctx)
	}
	defer tty.Close()

	if debug {
		return fn(ctx)
	}

	// Create and run spinner
	model := newSpinnerModel(label, cancel, tty)
	p := tea.NewProgram(model, tea.WithInput(tty), tea.WithOutput(tty))

	// Start the generation in background and send result to program
	go func() {
		result, err := fn(ctx)
		p.Send(generateMsg{result: result, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(spinnerModel)
	if m.cancelled {
		return nil, ErrCancelled
	}

	if m.result == nil {
		return nil, fmt.Errorf("no result received")
	}

	return m.result.result, m.result.err
}
