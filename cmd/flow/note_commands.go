package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/flow/internal/editor"
	"github.com/amonks/flow/internal/listflags"
	"github.com/amonks/flow/internal/markdown"
	internalstrings "github.com/amonks/flow/internal/strings"
	"github.com/amonks/flow/internal/ui"
	"github.com/amonks/flow/todo"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

// flow note add
var noteAddCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Add a note in the current scope",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNoteAdd,
}

var (
	noteAddContent string
	noteAddTags    []string
)

// flow note ls
var noteLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List notes in the current scope",
	Args:    cobra.NoArgs,
	RunE:    runNoteLs,
}

var (
	noteLsAll  bool
	noteLsJSON bool
)

// flow note show
var noteShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteShow,
}

var noteShowJSON bool

// flow note rm
var noteRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete notes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNoteRm,
}

// flow note edit
var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note",
	Long: `Edit a note.

Only the fields given as flags change. With no field flags on an interactive
terminal, the note opens in $EDITOR.`,
	Args: cobra.ExactArgs(1),
	RunE: runNoteEdit,
}

var (
	noteEditTitle     string
	noteEditContent   string
	noteEditTags      []string
	noteEditClearTags bool
	noteEditEdit      bool
	noteEditNoEdit    bool
)

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd, noteLsCmd, noteShowCmd, noteRmCmd, noteEditCmd)

	noteAddCmd.Flags().StringVarP(&noteAddContent, "content", "c", "", "Note body (use '-' to read from stdin)")
	noteAddCmd.Flags().StringArrayVarP(&noteAddTags, "tag", "t", nil, "Tag (repeatable)")

	listflags.AddAllFlag(noteLsCmd, &noteLsAll, "notes")
	listflags.AddJSONFlag(noteLsCmd, &noteLsJSON)

	listflags.AddJSONFlag(noteShowCmd, &noteShowJSON)

	noteEditCmd.Flags().StringVar(&noteEditTitle, "title", "", "New title")
	noteEditCmd.Flags().StringVarP(&noteEditContent, "content", "c", "", "New body (use '-' to read from stdin)")
	noteEditCmd.Flags().StringArrayVarP(&noteEditTags, "tag", "t", nil, "Replace tags (repeatable)")
	noteEditCmd.Flags().BoolVar(&noteEditClearTags, "clear-tags", false, "Remove all tags")
	noteEditCmd.Flags().BoolVarP(&noteEditEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no field flags)")
	noteEditCmd.Flags().BoolVar(&noteEditNoEdit, "no-edit", false, "Do not open $EDITOR")
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	title := internalstrings.NormalizeWhitespace(strings.Join(args, " "))
	if err := todo.ValidateTitle(title); err != nil {
		return err
	}

	content, err := resolveDescriptionFromStdin(noteAddContent, cmd.InOrStdin())
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	note := todo.Note{
		Title:       title,
		Content:     content,
		ProjectPath: s.scope,
		Tags:        normalizeTags(noteAddTags),
	}
	id, err := s.store.AddNote(&note)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created note %d in %s\n", id, s.scope)
	return nil
}

func runNoteLs(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	filter := todo.InScope(s.scope)
	if noteLsAll {
		filter = todo.AllScopes()
	}
	notes, err := s.store.ListNotes(filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if noteLsJSON {
		return encodeJSON(out, notes)
	}
	if len(notes) == 0 {
		fmt.Fprintln(out, noteEmptyListMessage(noteLsAll))
		return nil
	}
	fmt.Fprint(out, formatNoteTable(notes, newTheme(out), noteLsAll, time.Now()))
	return nil
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	note, err := s.store.GetNote(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if noteShowJSON {
		return encodeJSON(out, note)
	}
	fmt.Fprint(out, formatNoteDetail(note, newTheme(out), noteBodyRenderer(out, s.cfg.UI.Markdown)))
	return nil
}

func runNoteRm(cmd *cobra.Command, args []string) error {
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
		if err := s.store.DeleteNote(id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted note %d\n", id)
	}
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if noteEditEdit && noteEditNoEdit {
		return errors.New("--edit and --no-edit cannot be used together")
	}

	hasFlags := hasChangedFlags(cmd, "title", "content", "tag", "clear-tags")
	useEditor := shouldUseEditor(hasFlags, noteEditEdit, noteEditNoEdit, editor.IsInteractive())
	if !hasFlags && !useEditor {
		return errors.New("nothing to update; use --title, --content, --tag or --clear-tags")
	}

	var update todo.NoteUpdate
	if hasFlags {
		update, err = noteUpdateFromFlags(cmd)
		if err != nil {
			return err
		}
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if useEditor {
		note, err := s.store.GetNote(id)
		if err != nil {
			return err
		}
		applyNoteUpdate(&note, update)
		data, err := editor.EditNote(note)
		if err != nil {
			return err
		}
		update = data.Update()
	}

	if err := s.store.UpdateNote(id, update); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated note %d\n", id)
	return nil
}

func noteUpdateFromFlags(cmd *cobra.Command) (todo.NoteUpdate, error) {
	var update todo.NoteUpdate
	flags := cmd.Flags()

	if flags.Changed("title") {
		title := internalstrings.NormalizeWhitespace(noteEditTitle)
		if err := todo.ValidateTitle(title); err != nil {
			return todo.NoteUpdate{}, err
		}
		update.Title = &title
	}
	if flags.Changed("content") {
		content, err := resolveDescriptionFromStdin(noteEditContent, cmd.InOrStdin())
		if err != nil {
			return todo.NoteUpdate{}, err
		}
		update.Content = &content
	}
	if flags.Changed("tag") && noteEditClearTags {
		return todo.NoteUpdate{}, errors.New("--tag and --clear-tags cannot be used together")
	}
	if flags.Changed("tag") || noteEditClearTags {
		tags := normalizeTags(noteEditTags)
		update.Tags = &tags
	}
	return update, nil
}

// applyNoteUpdate previews flag edits in the editor buffer.
func applyNoteUpdate(note *todo.Note, update todo.NoteUpdate) {
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Tags != nil {
		note.Tags = *update.Tags
	}
}

func shouldUseEditor(hasFlags, edit, noEdit, interactive bool) bool {
	if edit {
		return true
	}
	if noEdit {
		return false
	}
	return !hasFlags && interactive
}

func noteEmptyListMessage(includeAll bool) string {
	if !includeAll {
		return "No notes found in this scope. Use --all to list every scope."
	}
	return "No notes found."
}

const noteBodyIndent = 2

// noteBodyRenderer returns the body formatter for w: markdown on terminals
// when enabled, word-wrapped plain text otherwise.
func noteBodyRenderer(w io.Writer, useMarkdown bool) func(string) string {
	width := outputWidth(w)
	if useMarkdown && ui.IsTerminal(w) {
		return func(body string) string {
			return string(markdown.SafeRender(width, noteBodyIndent, []byte(body)))
		}
	}
	return func(body string) string {
		return string(markdown.Plain(width, noteBodyIndent, []byte(body)))
	}
}

func formatNoteDetail(note todo.Note, theme ui.Theme, renderBody func(string) string) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render(markdown.Heading(note.ID, note.Title)))
	b.WriteByte('\n')
	writeDetailLine(&b, theme, "Scope:", scopeLabel(note.ProjectPath))
	writeDetailLine(&b, theme, "Tags:", markdown.Tags(note.Tags))
	writeDetailLine(&b, theme, "Created:", note.CreatedAt.Local().Format("2006-01-02 15:04"))
	if body := renderBody(note.Content); body != "" {
		b.WriteByte('\n')
		b.WriteString(body)
		b.WriteByte('\n')
	}
	return b.String()
}

const detailLabelWidth = 9

func writeDetailLine(b *strings.Builder, theme ui.Theme, label, value string) {
	b.WriteString(theme.Muted.Render(label))
	b.WriteString(strings.Repeat(" ", max(detailLabelWidth-len(label), 1)))
	b.WriteString(value)
	b.WriteByte('\n')
}
