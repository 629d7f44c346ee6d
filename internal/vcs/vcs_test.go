package vcs_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/amonks/flow/internal/vcs"
	"github.com/amonks/flow/project"
)

var (
	_ project.Finder = vcs.Git{}
	_ project.Finder = vcs.JJ{}
)

func requireTool(t *testing.T, tool string) {
	t.Helper()

	if _, err := exec.LookPath(tool); err != nil {
		t.Skipf("%s not installed", tool)
	}
}

func TestGitFindRoot(t *testing.T) {
	requireTool(t, "git")

	// Resolve symlinks (macOS /var -> /private/var)
	tmpDir, _ := filepath.EvalSymlinks(t.TempDir())
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = tmpDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v: %s", err, output)
	}
	sub := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	root, ok, err := vcs.Git{}.FindRoot(sub)
	if err != nil {
		t.Fatalf("find root: %v", err)
	}
	if !ok || root != tmpDir {
		t.Fatalf("expected root %q, got %q (ok=%v)", tmpDir, root, ok)
	}
}

func TestGitFindRoot_NotARepo(t *testing.T) {
	requireTool(t, "git")

	tmpDir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(tmpDir))

	_, ok, err := vcs.Git{}.FindRoot(tmpDir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatalf("expected no repository")
	}
}

func TestJJFindRoot(t *testing.T) {
	requireTool(t, "jj")

	tmpDir, _ := filepath.EvalSymlinks(t.TempDir())
	cmd := exec.Command("jj", "git", "init")
	cmd.Dir = tmpDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("jj git init: %v: %s", err, output)
	}

	root, ok, err := vcs.JJ{}.FindRoot(tmpDir)
	if err != nil {
		t.Fatalf("find root: %v", err)
	}
	if !ok || root != tmpDir {
		t.Fatalf("expected root %q, got %q (ok=%v)", tmpDir, root, ok)
	}
}

func TestFindRoot_MissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, ok, err := vcs.Git{}.FindRoot(t.TempDir())
	if !errors.Is(err, vcs.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false")
	}
}

func TestResolverFallsBackWhenToolMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	dir := t.TempDir()
	if got := project.NewResolver(vcs.JJ{}).ResolveFrom(dir); got != dir {
		t.Fatalf("expected %s, got %s", dir, got)
	}
}
