package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	internalstrings "github.com/amonks/flow/internal/strings"
	"github.com/amonks/flow/todo"
)

// NoteData is the editable part of a note.
type NoteData struct {
	Title   string   `toml:"title"`
	Tags    []string `toml:"tags"`
	Content string   `toml:"-"`
}

// DataFromNote returns the editable fields of n.
func DataFromNote(n todo.Note) NoteData {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteData{Title: n.Title, Tags: tags, Content: n.Content}
}

// RenderNoteTOML renders the note as TOML front matter, a --- separator
// and the body.
func RenderNoteTOML(data NoteData) (string, error) {
	if data.Tags == nil {
		data.Tags = []string{}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return "", fmt.Errorf("render note: %w", err)
	}
	buf.WriteString("---\n")
	buf.WriteString(data.Content)
	if data.Content != "" && !strings.HasSuffix(data.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

// ParseNoteTOML parses the content written by the editor.
func ParseNoteTOML(content string) (*NoteData, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed NoteData
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	if parsed.Tags == nil {
		parsed.Tags = []string{}
	}
	parsed.Content = internalstrings.TrimTrailingNewlines(internalstrings.TrimLeadingNewlines(body))

	if err := todo.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// Update returns the store update that applies every edited field.
func (d *NoteData) Update() todo.NoteUpdate {
	title := d.Title
	content := d.Content
	tags := append([]string{}, d.Tags...)
	return todo.NoteUpdate{Title: &title, Content: &content, Tags: &tags}
}

func splitFrontmatter(content string) (string, string) {
	content = internalstrings.TrimLeadingNewlines(content)
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// EditNote opens the editor on note and returns the edited fields.
func EditNote(note todo.Note) (*NoteData, error) {
	content, err := RenderNoteTOML(DataFromNote(note))
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "flow-note-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseNoteTOML(string(edited))
}
