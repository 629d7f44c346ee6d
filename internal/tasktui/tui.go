// Package tasktui implements the interactive task list.
//
// The view holds a snapshot of the tasks in one scope and a selection. Every
// mutation is written to the store and followed by a full reload, after which
// the selection follows the previously selected task. Store calls happen
// synchronously inside Update, so the program never has more than one
// operation in flight.
package tasktui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	internalstrings "github.com/amonks/flow/internal/strings"
	"github.com/amonks/flow/internal/ui"
	"github.com/amonks/flow/todo"
)

// DefaultRefreshInterval is the idle redraw interval.
const DefaultRefreshInterval = 250 * time.Millisecond

// Store is the part of todo.Store the view needs.
type Store interface {
	ListTasks(filter todo.Filter) ([]todo.Task, error)
	CompleteTask(id int64) error
	StartTask(id int64) error
	ReopenTask(id int64) error
}

// Options configures Run.
type Options struct {
	// Scope limits the view to tasks created in this scope.
	Scope string

	// RefreshInterval is how often the view redraws without input.
	RefreshInterval time.Duration

	// Input and Output default to the process terminal.
	Input  io.Reader
	Output io.Writer

	// AltScreen draws on the terminal's alternate screen.
	AltScreen bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type tickMsg time.Time

type model struct {
	store       Store
	scope       string
	tasks       []todo.Task
	selected    int
	keys        keyMap
	help        help.Model
	width       int
	height      int
	interval    time.Duration
	now         time.Time
	clock       func() time.Time
	status      string
	statusLevel statusLevel
	err         error
}

// Run shows the interactive view until the user quits. The terminal is
// restored on every exit path. It returns the first error that ended the
// session, if any.
func Run(ctx context.Context, store Store, opts Options) error {
	if store == nil {
		return errors.New("task store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m, err := newModel(store, opts)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("interactive view: %w", err)
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func newModel(store Store, opts Options) (model, error) {
	interval := opts.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}

	m := model{
		store:    store,
		scope:    opts.Scope,
		selected: noSelection,
		keys:     newKeyMap(),
		help:     help.New(),
		interval: interval,
		clock:    clock,
		now:      clock(),
	}

	tasks, err := store.ListTasks(todo.InScope(opts.Scope))
	if err != nil {
		return model{}, fmt.Errorf("load tasks: %w", err)
	}
	m.tasks = tasks
	m.selected = initialSelection(len(tasks))
	return m, nil
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tickMsg:
		m.now = m.clock()
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.selected = moveSelection(m.selected, 1, len(m.tasks))
	case key.Matches(msg, m.keys.Up):
		m.selected = moveSelection(m.selected, -1, len(m.tasks))
	case key.Matches(msg, m.keys.First):
		m.selected = initialSelection(len(m.tasks))
	case key.Matches(msg, m.keys.Last):
		m.selected = len(m.tasks) - 1
	case key.Matches(msg, m.keys.Complete):
		return m.complete()
	case key.Matches(msg, m.keys.Start):
		return m.start()
	case key.Matches(msg, m.keys.Reopen):
		return m.reopen()
	case key.Matches(msg, m.keys.Reload):
		m = m.reload()
		if m.err == nil {
			m.setStatus("Reloaded", statusInfo)
		}
		return m.quitOnError()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m model) current() (todo.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.selected], true
}

// complete marks the selected task done. Done tasks are left alone.
func (m model) complete() (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		return m, nil
	}
	if task.IsDone() {
		m.setStatus(fmt.Sprintf("#%d is already done", task.ID), statusNone)
		return m, nil
	}
	return m.mutate(task, m.store.CompleteTask, "Completed")
}

func (m model) start() (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		return m, nil
	}
	if task.Status != todo.StatusTodo {
		m.setStatus(fmt.Sprintf("#%d is %s", task.ID, strings.ToLower(task.Status.String())), statusNone)
		return m, nil
	}
	return m.mutate(task, m.store.StartTask, "Started")
}

func (m model) reopen() (tea.Model, tea.Cmd) {
	task, ok := m.current()
	if !ok {
		return m, nil
	}
	if task.Status == todo.StatusTodo {
		m.setStatus(fmt.Sprintf("#%d is already open", task.ID), statusNone)
		return m, nil
	}
	return m.mutate(task, m.store.ReopenTask, "Reopened")
}

// mutate applies op to task and reloads. A failed write is shown in the
// status line; a failed reload ends the session.
func (m model) mutate(task todo.Task, op func(int64) error, verb string) (tea.Model, tea.Cmd) {
	if err := op(task.ID); err != nil {
		m.setStatus(fmt.Sprintf("%s failed: %v", verb, err), statusError)
		return m, nil
	}
	m = m.reload()
	if m.err == nil {
		m.setStatus(fmt.Sprintf("%s #%d", verb, task.ID), statusInfo)
	}
	return m.quitOnError()
}

func (m model) reload() model {
	previousID := int64(0)
	if task, ok := m.current(); ok {
		previousID = task.ID
	}

	tasks, err := m.store.ListTasks(todo.InScope(m.scope))
	if err != nil {
		m.err = fmt.Errorf("reload tasks: %w", err)
		return m
	}
	m.tasks = tasks
	m.selected = reanchor(tasks, previousID, m.selected)
	return m
}

func (m model) quitOnError() (tea.Model, tea.Cmd) {
	if m.err != nil {
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) View() string {
	lines := []string{m.renderHeader(), ""}
	lines = append(lines, m.renderRows()...)
	lines = append(lines, "", m.renderStatusLine(), m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m model) renderHeader() string {
	header := headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(m.tasks)))
	if m.scope != "" {
		header += " " + scopeStyle.Render(m.scope)
	}
	return header
}

// chromeLines counts the header, status and help lines around the rows.
const chromeLines = 5

func (m model) renderRows() []string {
	if len(m.tasks) == 0 {
		return []string{valueMuted.Render("No tasks in this scope.")}
	}

	rows := 0
	if m.height > 0 {
		rows = max(m.height-chromeLines, 1)
	}
	start, end := visibleRange(len(m.tasks), m.selected, rows)

	idWidth := len(fmt.Sprint(m.tasks[len(m.tasks)-1].ID))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(m.tasks[i], i == m.selected, idWidth))
	}
	return lines
}

func (m model) renderRow(task todo.Task, selected bool, idWidth int) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render(">") + " "
	}

	title := task.Title
	switch {
	case task.IsDone():
		title = doneStyle.Render(title)
	case task.Status == todo.StatusInProgress:
		title = inProgressStyle.Render(title)
	case selected:
		title = selectedStyle.Render(title)
	}

	priority := fmt.Sprintf("%-8s", task.Priority.String())
	if style, ok := priorityStyles[task.Priority]; ok {
		priority = style.Render(priority)
	}

	row := fmt.Sprintf("%s%s #%-*d %s %s", cursor, statusMark(task.Status), idWidth, task.ID, priority, title)
	if task.DueDate != nil {
		due := "due " + ui.FormatDue(task.DueDate)
		if !task.IsDone() && ui.IsOverdue(task.DueDate, m.now) {
			due = overdueStyle.Render(due + " (overdue)")
		} else {
			due = valueMuted.Render(due)
		}
		row += "  " + due
	}
	if len(task.Tags) > 0 {
		row += "  " + valueMuted.Render(strings.Join(task.Tags, ", "))
	}
	if m.width > 0 {
		row = ui.TruncateWidth(row, m.width)
	}
	return row
}

func statusMark(status todo.Status) string {
	switch status {
	case todo.StatusDone:
		return "[x]"
	case todo.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

func (m model) renderStatusLine() string {
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(text)
}
