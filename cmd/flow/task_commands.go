package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/flow/internal/dates"
	"github.com/amonks/flow/internal/listflags"
	internalstrings "github.com/amonks/flow/internal/strings"
	"github.com/amonks/flow/todo"
)

// flow add
var addCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Add a task in the current scope",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var (
	addPriority    priorityValue
	addDue         string
	addDescription string
	addTags        []string
)

// flow ls
var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks in the current scope",
	Args:    cobra.NoArgs,
	RunE:    runLs,
}

var (
	lsAll    bool
	lsStatus string
	lsJSON   bool
)

// flow done
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark tasks as done",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskOp(cmd, args, (*todo.Store).CompleteTask, "Completed")
	},
}

// flow start
var startCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark tasks as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskOp(cmd, args, (*todo.Store).StartTask, "Started")
	},
}

// flow reopen
var reopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Move tasks back to todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskOp(cmd, args, (*todo.Store).ReopenTask, "Reopened")
	},
}

// flow rm
var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTaskOp(cmd, args, (*todo.Store).DeleteTask, "Deleted")
	},
}

func init() {
	rootCmd.AddCommand(addCmd, lsCmd, doneCmd, startCmd, reopenCmd, rmCmd)
	addDescriptionFlagAliases(addCmd)

	addCmd.Flags().VarP(&addPriority, "priority", "p", "Priority (low, medium, high, critical)")
	addCmd.Flags().StringVar(&addDue, "due", "", `Due date, e.g. "tomorrow", "in 3 days", "2026-02-01"`)
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "Tag (repeatable)")

	listflags.AddAllFlag(lsCmd, &lsAll, "tasks")
	lsCmd.Flags().StringVarP(&lsStatus, "status", "s", "", "Only show tasks with this status (todo, in progress, done)")
	listflags.AddJSONFlag(lsCmd, &lsJSON)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := internalstrings.NormalizeWhitespace(strings.Join(args, " "))
	if err := todo.ValidateTitle(title); err != nil {
		return err
	}

	var due *time.Time
	if cmd.Flags().Changed("due") {
		parsed, err := dates.Parse(addDue, time.Now())
		if err != nil {
			return fmt.Errorf("due date: %w", err)
		}
		due = &parsed
	}

	description, err := resolveDescriptionFromStdin(addDescription, cmd.InOrStdin())
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	task := todo.Task{
		Title:       title,
		Description: description,
		Priority:    addPriority.Or(s.cfg.DefaultPriority()),
		DueDate:     due,
		ProjectPath: s.scope,
		Tags:        normalizeTags(addTags),
	}
	id, err := s.store.AddTask(&task)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created task %d in %s\n", id, s.scope)
	return nil
}

func runLs(cmd *cobra.Command, args []string) error {
	var status todo.Status
	if lsStatus != "" {
		parsed, err := todo.ParseStatus(lsStatus)
		if err != nil {
			return err
		}
		status = parsed
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	filter := todo.InScope(s.scope)
	if lsAll {
		filter = todo.AllScopes()
	}
	tasks, err := s.store.ListTasks(filter)
	if err != nil {
		return err
	}
	total := len(tasks)
	if status != "" {
		tasks = filterTasksByStatus(tasks, status)
	}

	out := cmd.OutOrStdout()
	if lsJSON {
		return encodeJSON(out, tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, taskEmptyListMessage(total, status, lsAll))
		return nil
	}
	fmt.Fprint(out, formatTaskTable(tasks, newTheme(out), lsAll, time.Now()))
	return nil
}

func runTaskOp(cmd *cobra.Command, args []string, op func(*todo.Store, int64) error, verb string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	for _, id := range ids {
		if err := op(s.store, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s task %d\n", verb, id)
	}
	return nil
}

func filterTasksByStatus(tasks []todo.Task, status todo.Status) []todo.Task {
	filtered := make([]todo.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == status {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

func taskEmptyListMessage(total int, status todo.Status, includeAll bool) string {
	if total > 0 && status != "" {
		return fmt.Sprintf("No tasks found with status %s.", strings.ToLower(status.String()))
	}
	if !includeAll {
		return "No tasks found in this scope. Use --all to list every scope."
	}
	return "No tasks found."
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}

	return strings.TrimRight(string(input), "\r\n"), nil
}

// normalizeTags trims tags, dropping empty ones and repeats.
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		for _, part := range strings.Split(tag, ",") {
			part = internalstrings.NormalizeWhitespace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			normalized = append(normalized, part)
		}
	}
	return normalized
}
