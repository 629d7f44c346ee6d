package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/amonks/flow/internal/config"
	"github.com/amonks/flow/internal/ui"
	"github.com/amonks/flow/internal/vcs"
	"github.com/amonks/flow/project"
	"github.com/amonks/flow/todo"
)

// session is the state shared by commands that touch the store.
type session struct {
	cfg   *config.Config
	scope string
	store *todo.Store
}

func (s *session) Close() error {
	return s.store.Close()
}

// resolveScope loads the configuration and resolves the current scope. The
// discovery mode comes from the global file and environment, since the
// project file can only be found once the scope is known.
func resolveScope() (*config.Config, string, error) {
	base, err := config.Load("")
	if err != nil {
		return nil, "", err
	}

	scope := project.NewResolver(finderFor(base.Context.Discovery)).Resolve()

	cfg, err := config.Load(scope)
	if err != nil {
		return nil, "", err
	}
	return cfg, scope, nil
}

func finderFor(discovery config.Discovery) project.Finder {
	switch discovery {
	case config.DiscoveryGit:
		return vcs.Git{}
	case config.DiscoveryJJ:
		return vcs.JJ{}
	default:
		return project.MarkerFinder{}
	}
}

// openSession resolves the scope and opens the store. Decode issues are
// printed to the command's stderr unless --quiet is set.
func openSession(cmd *cobra.Command) (*session, error) {
	return openSessionWithReporter(newIssueReporter(cmd.ErrOrStderr(), quietFlag).Report)
}

func openSessionWithReporter(report func(todo.DecodeIssue)) (*session, error) {
	cfg, scope, err := resolveScope()
	if err != nil {
		return nil, err
	}

	dir, err := cfg.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	store, err := todo.OpenDir(dir, todo.Options{
		MissingIDs:    cfg.MissingIDs(),
		OnDecodeIssue: report,
	})
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, scope: scope, store: store}, nil
}

// issueReporter prints decode issues as warnings. While held, warnings are
// queued until Release so they do not land on a screen another program owns.
type issueReporter struct {
	w       io.Writer
	label   lipgloss.Style
	quiet   bool
	held    bool
	pending []todo.DecodeIssue
}

func newIssueReporter(w io.Writer, quiet bool) *issueReporter {
	theme := ui.NewTheme(ui.NewRenderer(w))
	return &issueReporter{w: w, label: theme.Warning, quiet: quiet}
}

func (r *issueReporter) Report(issue todo.DecodeIssue) {
	if r.quiet {
		return
	}
	if r.held {
		r.pending = append(r.pending, issue)
		return
	}
	r.print(issue)
}

func (r *issueReporter) Hold() {
	r.held = true
}

// Release prints the queued warnings and stops holding.
func (r *issueReporter) Release() {
	r.held = false
	for _, issue := range r.pending {
		r.print(issue)
	}
	r.pending = nil
}

func (r *issueReporter) print(issue todo.DecodeIssue) {
	fmt.Fprintf(r.w, "%s %s\n", r.label.Render("warning:"), issue)
}
