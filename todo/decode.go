package todo

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RecordKind names the collection a record belongs to.
type RecordKind string

const (
	// KindTask marks issues found in the tasks table.
	KindTask RecordKind = "task"

	// KindNote marks issues found in the notes table.
	KindNote RecordKind = "note"
)

// DecodeIssue describes a stored value that could not be read and was
// replaced with a safe default. Reads never fail because of these.
type DecodeIssue struct {
	Kind     RecordKind
	RecordID int64
	Column   string
	Value    string
	Fallback string
}

// String formats the issue for diagnostics output.
func (i DecodeIssue) String() string {
	return fmt.Sprintf("%s %d: unreadable %s %q, using %s", i.Kind, i.RecordID, i.Column, i.Value, i.Fallback)
}

type taskRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullString `db:"due_date"`
	ProjectPath sql.NullString `db:"project_path"`
	CreatedAt   string         `db:"created_at"`
	Tags        sql.NullString `db:"tags"`
}

type noteRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Content     sql.NullString `db:"content"`
	ProjectPath sql.NullString `db:"project_path"`
	CreatedAt   string         `db:"created_at"`
	Tags        sql.NullString `db:"tags"`
}

// decoder turns stored rows into records, substituting defaults for
// malformed values and recording what it substituted.
type decoder struct {
	now    time.Time
	issues []DecodeIssue
}

func newDecoder(now time.Time) *decoder {
	return &decoder{now: now}
}

func (d *decoder) report(kind RecordKind, id int64, column, value, fallback string) {
	d.issues = append(d.issues, DecodeIssue{
		Kind:     kind,
		RecordID: id,
		Column:   column,
		Value:    value,
		Fallback: fallback,
	})
}

func (d *decoder) task(row taskRow) Task {
	status, ok := lookupStatus(row.Status)
	if !ok {
		d.report(KindTask, row.ID, "status", row.Status, string(status))
	}
	priority, ok := lookupPriority(row.Priority)
	if !ok {
		d.report(KindTask, row.ID, "priority", row.Priority, priority.String())
	}

	var due *time.Time
	if row.DueDate.Valid && strings.TrimSpace(row.DueDate.String) != "" {
		parsed, err := decodeTime(row.DueDate.String)
		if err != nil {
			d.report(KindTask, row.ID, "due_date", row.DueDate.String, "no due date")
		} else {
			due = &parsed
		}
	}

	return Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description.String,
		Status:      status,
		Priority:    priority,
		DueDate:     due,
		ProjectPath: row.ProjectPath.String,
		CreatedAt:   d.createdAt(KindTask, row.ID, row.CreatedAt),
		Tags:        d.tags(KindTask, row.ID, row.Tags),
	}
}

func (d *decoder) note(row noteRow) Note {
	return Note{
		ID:          row.ID,
		Title:       row.Title,
		Content:     row.Content.String,
		ProjectPath: row.ProjectPath.String,
		CreatedAt:   d.createdAt(KindNote, row.ID, row.CreatedAt),
		Tags:        d.tags(KindNote, row.ID, row.Tags),
	}
}

func (d *decoder) createdAt(kind RecordKind, id int64, value string) time.Time {
	parsed, err := decodeTime(value)
	if err != nil {
		d.report(kind, id, "created_at", value, "current time")
		return d.now
	}
	return parsed
}

func (d *decoder) tags(kind RecordKind, id int64, value sql.NullString) []string {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return []string{}
	}
	tags, err := decodeTags(value.String)
	if err != nil {
		d.report(kind, id, "tags", value.String, "no tags")
		return []string{}
	}
	return tags
}

func encodeTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func decodeTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return parsed.In(time.Local), nil
}

// encodeTags stores tags verbatim, in order. A nil slice is stored as [].
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(value string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(value), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullTime(value *time.Time) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(*value), Valid: true}
}
