// Package vcs finds repository roots by asking the git and jj CLIs.
package vcs

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolNotFound indicates the VCS binary is not on PATH.
var ErrToolNotFound = errors.New("vcs tool not found")

// Git finds roots with `git rev-parse --show-toplevel`.
type Git struct{}

// JJ finds roots with `jj workspace root`.
type JJ struct{}

// FindRoot returns the working-tree root enclosing dir.
func (Git) FindRoot(dir string) (string, bool, error) {
	return findRoot(dir, "git", "rev-parse", "--show-toplevel")
}

// FindRoot returns the workspace root enclosing dir.
func (JJ) FindRoot(dir string) (string, bool, error) {
	return findRoot(dir, "jj", "workspace", "root")
}

// findRoot runs a root-printing command in dir. A non-zero exit means dir is
// not inside a repository.
func findRoot(dir, tool string, args ...string) (string, bool, error) {
	if _, err := exec.LookPath(tool); err != nil {
		return "", false, fmt.Errorf("%w: %s", ErrToolNotFound, tool)
	}

	cmd := exec.Command(tool, args...)
	cmd.Dir = dir
	root, err := commandOutputString(cmd, tool+" "+strings.Join(args, " "))
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, err
	}
	if root == "" {
		return "", false, nil
	}
	return root, true, nil
}

func commandOutputString(cmd *exec.Cmd, context string) (string, error) {
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s: %w: %s", context, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%s: %w", context, err)
	}
	return strings.TrimSpace(string(output)), nil
}
