package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/amonks/flow/todo"
)

// ColorEnabled reports whether styled output should be written to w.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	file, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// NewRenderer returns a lipgloss renderer for w that emits plain text when
// colour is disabled.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w)
	if !ColorEnabled(w) {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return renderer
}

// Theme holds the styles used for static output.
type Theme struct {
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Done    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	status   map[todo.Status]lipgloss.Style
	priority map[todo.Priority]lipgloss.Style
}

// NewTheme builds the static output styles on renderer.
func NewTheme(renderer *lipgloss.Renderer) Theme {
	return Theme{
		Header:  renderer.NewStyle().Bold(true),
		Muted:   renderer.NewStyle().Foreground(lipgloss.Color("8")),
		Done:    renderer.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8")),
		Warning: renderer.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Error:   renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		status: map[todo.Status]lipgloss.Style{
			todo.StatusTodo:       renderer.NewStyle(),
			todo.StatusInProgress: renderer.NewStyle().Foreground(lipgloss.Color("6")),
			todo.StatusDone:       renderer.NewStyle().Foreground(lipgloss.Color("2")),
		},
		priority: map[todo.Priority]lipgloss.Style{
			todo.PriorityLow:      renderer.NewStyle().Foreground(lipgloss.Color("8")),
			todo.PriorityMedium:   renderer.NewStyle(),
			todo.PriorityHigh:     renderer.NewStyle().Foreground(lipgloss.Color("3")),
			todo.PriorityCritical: renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

// Status renders a status by display name.
func (t Theme) Status(status todo.Status) string {
	return t.status[status].Render(status.String())
}

// Priority renders a priority by display name.
func (t Theme) Priority(priority todo.Priority) string {
	return t.priority[priority].Render(priority.String())
}

// Title renders a task title, struck through when the task is done.
func (t Theme) Title(task todo.Task) string {
	if task.IsDone() {
		return t.Done.Render(task.Title)
	}
	return task.Title
}
