// Package markdown renders note bodies for the terminal.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/wordwrap"

	internalstrings "github.com/amonks/flow/internal/strings"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output. It returns nil for
// blank input.
func Render(width, indent int, input []byte) []byte {
	value, ok := prepare(input)
	if !ok {
		return nil
	}
	width, indent = clampLayout(width, indent)

	rendered := value
	if r := markdownRenderer(width - indent); r != nil {
		formatted, err := r.Render(value)
		if err == nil {
			rendered = formatted
		}
	}
	return finish(rendered, indent)
}

// SafeRender is Render, falling back to the unrendered text if the
// renderer panics.
func SafeRender(width, indent int, input []byte) (out []byte) {
	defer func() {
		if recovered := recover(); recovered != nil {
			out = Plain(width, indent, input)
		}
	}()
	return Render(width, indent, input)
}

// Plain word-wraps text without interpreting markdown.
func Plain(width, indent int, input []byte) []byte {
	value, ok := prepare(input)
	if !ok {
		return nil
	}
	width, indent = clampLayout(width, indent)
	return finish(wordwrap.String(value, width-indent), indent)
}

func prepare(input []byte) (string, bool) {
	if len(input) == 0 {
		return "", false
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if internalstrings.IsBlank(value) {
		return "", false
	}
	return value, true
}

func clampLayout(width, indent int) (int, int) {
	if indent < 0 {
		indent = 0
	}
	if width-indent < 1 {
		width = indent + 1
	}
	return width, indent
}

func finish(rendered string, indent int) []byte {
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if internalstrings.IsBlank(rendered) {
		return nil
	}
	return []byte(internalstrings.IndentBlock(rendered, indent))
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	style.ImageText.Format = "Image: {{.text}} ->"
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

// Tags formats tags for display.
func Tags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

// Heading returns a one-line heading for a note.
func Heading(id int64, title string) string {
	return fmt.Sprintf("#%d %s", id, title)
}
