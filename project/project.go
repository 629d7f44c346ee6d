// Package project resolves the scope that tasks and notes are filed under.
//
// A scope is the absolute path of the repository enclosing the working
// directory. When no repository is found, or discovery fails, the working
// directory itself is the scope. Resolution never fails.
package project

import (
	"os"
	"path/filepath"
)

// Finder locates the repository root enclosing dir. It reports ok=false
// when dir is not inside a repository.
type Finder interface {
	FindRoot(dir string) (root string, ok bool, err error)
}

// FinderFunc adapts a function to the Finder interface.
type FinderFunc func(dir string) (string, bool, error)

// FindRoot calls f(dir).
func (f FinderFunc) FindRoot(dir string) (string, bool, error) {
	return f(dir)
}

// Resolver turns a starting directory into a scope.
type Resolver struct {
	// Finder discovers repository roots. Defaults to a MarkerFinder.
	Finder Finder

	// WorkingDir returns the starting directory for Resolve.
	// Defaults to os.Getwd.
	WorkingDir func() (string, error)
}

// NewResolver returns a resolver using finder, or the default marker-based
// finder when finder is nil.
func NewResolver(finder Finder) *Resolver {
	return &Resolver{Finder: finder}
}

// Resolve returns the scope for the process working directory.
func (r *Resolver) Resolve() string {
	getwd := r.WorkingDir
	if getwd == nil {
		getwd = os.Getwd
	}
	dir, err := getwd()
	if err != nil || dir == "" {
		dir = "."
	}
	return r.ResolveFrom(dir)
}

// ResolveFrom returns the scope for dir: the enclosing repository root if
// there is one, otherwise dir itself. The result is absolute and clean.
func (r *Resolver) ResolveFrom(dir string) string {
	dir = absolute(dir)

	finder := r.Finder
	if finder == nil {
		finder = MarkerFinder{}
	}
	root, ok, err := finder.FindRoot(dir)
	if err != nil || !ok || root == "" {
		return dir
	}
	return absolute(root)
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
