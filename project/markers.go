package project

import (
	"os"
	"path/filepath"
)

// DefaultMarkers are the entries that identify a repository root. Git
// worktrees and submodules use a .git file rather than a directory, so
// either kind of entry counts.
var DefaultMarkers = []string{".jj", ".git"}

// MarkerFinder walks upward from a directory looking for a marker entry.
// It never runs external commands.
type MarkerFinder struct {
	// Markers to look for. Defaults to DefaultMarkers.
	Markers []string
}

// FindRoot returns the nearest ancestor of dir (including dir) that
// contains one of the markers.
func (f MarkerFinder) FindRoot(dir string) (string, bool, error) {
	markers := f.Markers
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	dir = filepath.Clean(dir)
	for {
		for _, marker := range markers {
			if _, err := os.Lstat(filepath.Join(dir, marker)); err == nil {
				return dir, true, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
