package tasktui

import "github.com/amonks/flow/todo"

// noSelection marks an empty list.
const noSelection = -1

// initialSelection selects the first row of a non-empty list.
func initialSelection(n int) int {
	if n == 0 {
		return noSelection
	}
	return 0
}

// moveSelection moves by delta, wrapping at both ends.
func moveSelection(selected, delta, n int) int {
	if n == 0 {
		return noSelection
	}
	if selected < 0 || selected >= n {
		return 0
	}
	next := (selected + delta) % n
	if next < 0 {
		next += n
	}
	return next
}

// reanchor picks the selection after the list was reloaded: the row holding
// the previously selected task if it is still present, otherwise the old
// index clamped to the new bounds.
func reanchor(tasks []todo.Task, previousID int64, previousIndex int) int {
	if len(tasks) == 0 {
		return noSelection
	}
	if previousID != 0 {
		for i, task := range tasks {
			if task.ID == previousID {
				return i
			}
		}
	}
	switch {
	case previousIndex < 0:
		return 0
	case previousIndex >= len(tasks):
		return len(tasks) - 1
	default:
		return previousIndex
	}
}

// visibleRange returns the window of rows [start, end) to draw so that
// selected stays on screen.
func visibleRange(n, selected, rows int) (int, int) {
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}
