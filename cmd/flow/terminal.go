package main

import (
	"io"

	"golang.org/x/term"
)

const defaultOutputWidth = 80

// outputWidth returns the width of the terminal behind w, or a default when
// w is not a terminal.
func outputWidth(w io.Writer) int {
	file, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return defaultOutputWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultOutputWidth
	}
	return width
}
