package main

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/flow/internal/markdown"
	internalstrings "github.com/amonks/flow/internal/strings"
	"github.com/amonks/flow/internal/ui"
	"github.com/amonks/flow/todo"
)

func newTheme(w io.Writer) ui.Theme {
	return ui.NewTheme(ui.NewRenderer(w))
}

func formatTaskTable(tasks []todo.Task, theme ui.Theme, includeScope bool, now time.Time) string {
	headers := []string{"ID", "STATUS", "PRIORITY", "DUE", "TAGS", "TITLE"}
	if includeScope {
		headers = []string{"ID", "STATUS", "PRIORITY", "DUE", "SCOPE", "TAGS", "TITLE"}
	}
	builder := ui.NewTableBuilder(headers, len(tasks)).WithHeaderStyle(theme.Header)

	for _, task := range tasks {
		due := ui.FormatDue(task.DueDate)
		if !task.IsDone() && ui.IsOverdue(task.DueDate, now) {
			due = theme.Warning.Render(due)
		}
		row := []string{
			strconv.FormatInt(task.ID, 10),
			theme.Status(task.Status),
			theme.Priority(task.Priority),
			due,
		}
		if includeScope {
			row = append(row, ui.TruncateTableCell(scopeLabel(task.ProjectPath)))
		}
		title := task
		title.Title = ui.TruncateTableCell(task.Title)
		row = append(row, ui.TruncateTableCell(markdown.Tags(task.Tags)), theme.Title(title))
		builder.AddRow(row)
	}

	return builder.String()
}

func formatNoteTable(notes []todo.Note, theme ui.Theme, includeScope bool, now time.Time) string {
	headers := []string{"ID", "AGE", "TAGS", "TITLE"}
	if includeScope {
		headers = []string{"ID", "AGE", "SCOPE", "TAGS", "TITLE"}
	}
	builder := ui.NewTableBuilder(headers, len(notes)).WithHeaderStyle(theme.Header)

	for _, note := range notes {
		row := []string{
			strconv.FormatInt(note.ID, 10),
			ui.FormatTimeAgo(note.CreatedAt, now),
		}
		if includeScope {
			row = append(row, ui.TruncateTableCell(scopeLabel(note.ProjectPath)))
		}
		row = append(row, ui.TruncateTableCell(markdown.Tags(note.Tags)), ui.TruncateTableCell(note.Title))
		builder.AddRow(row)
	}

	return builder.String()
}

func scopeLabel(scope string) string {
	if internalstrings.IsBlank(scope) {
		return "-"
	}
	return strings.TrimSpace(scope)
}
