package tasktui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/flow/todo"
)

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	scopeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	selectedStyle      = lipgloss.NewStyle().Bold(true)
	doneStyle          = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244"))
	inProgressStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	overdueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	valueMuted         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	priorityStyles = map[todo.Priority]lipgloss.Style{
		todo.PriorityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		todo.PriorityMedium:   lipgloss.NewStyle(),
		todo.PriorityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		todo.PriorityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)
