package todo

import (
	"database/sql"
	"errors"
	"fmt"
)

const noteColumns = `id, title, content, project_path, created_at, tags`

// NoteUpdate configures fields to update on a note.
// Nil pointers mean "don't update this field".
type NoteUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// IsEmpty reports whether the update changes nothing.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Tags == nil
}

// AddNote stores a new note and returns its assigned id.
func (s *Store) AddNote(n *Note) (int64, error) {
	if n.ID != 0 {
		return 0, fmt.Errorf("%w: %d", ErrAlreadyPersisted, n.ID)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if err := ValidateNote(n); err != nil {
		return 0, err
	}

	tags, err := encodeTags(n.Tags)
	if err != nil {
		return 0, err
	}

	result, err := s.db.NamedExec(`
		INSERT INTO notes (title, content, project_path, created_at, tags)
		VALUES (:title, :content, :project_path, :created_at, :tags)
	`, noteRow{
		Title:       n.Title,
		Content:     nullString(n.Content),
		ProjectPath: nullString(n.ProjectPath),
		CreatedAt:   encodeTime(n.CreatedAt),
		Tags:        sql.NullString{String: tags, Valid: true},
	})
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read note id: %w", err)
	}
	n.ID = id
	return id, nil
}

// ListNotes returns the notes matching filter in insertion order.
func (s *Store) ListNotes(filter Filter) ([]Note, error) {
	var rows []noteRow
	var err error
	if filter.Scope == nil {
		err = s.db.Select(&rows, `SELECT `+noteColumns+` FROM notes ORDER BY id`)
	} else {
		err = s.db.Select(&rows, `SELECT `+noteColumns+` FROM notes WHERE project_path = ? ORDER BY id`, *filter.Scope)
	}
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	d := newDecoder(s.now())
	notes := make([]Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, d.note(row))
	}
	s.collect(d)
	return notes, nil
}

// GetNote returns a single note. It returns ErrNoteNotFound if the id does
// not exist, regardless of the missing-id policy.
func (s *Store) GetNote(id int64) (Note, error) {
	var row noteRow
	err := s.db.Get(&row, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, fmt.Errorf("%w: %d", ErrNoteNotFound, id)
	}
	if err != nil {
		return Note{}, fmt.Errorf("get note %d: %w", id, err)
	}

	d := newDecoder(s.now())
	note := d.note(row)
	s.collect(d)
	return note, nil
}

// UpdateNote applies the fields present in update. All fields are written in
// one transaction.
func (s *Store) UpdateNote(id int64, update NoteUpdate) error {
	if update.Title != nil {
		if err := ValidateTitle(*update.Title); err != nil {
			return err
		}
	}

	var tags string
	if update.Tags != nil {
		encoded, err := encodeTags(*update.Tags)
		if err != nil {
			return err
		}
		tags = encoded
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("update note %d: %w", id, err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM notes WHERE id = ?)`, id); err != nil {
		return fmt.Errorf("update note %d: %w", id, err)
	}
	if !exists {
		return s.checkAffected(0, ErrNoteNotFound, id)
	}

	if update.Title != nil {
		if _, err := tx.Exec(`UPDATE notes SET title = ? WHERE id = ?`, *update.Title, id); err != nil {
			return fmt.Errorf("update note %d title: %w", id, err)
		}
	}
	if update.Content != nil {
		if _, err := tx.Exec(`UPDATE notes SET content = ? WHERE id = ?`, nullString(*update.Content), id); err != nil {
			return fmt.Errorf("update note %d content: %w", id, err)
		}
	}
	if update.Tags != nil {
		if _, err := tx.Exec(`UPDATE notes SET tags = ? WHERE id = ?`, tags, id); err != nil {
			return fmt.Errorf("update note %d tags: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update note %d: %w", id, err)
	}
	return nil
}

// DeleteNote permanently removes a note.
func (s *Store) DeleteNote(id int64) error {
	result, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return s.checkAffected(affected, ErrNoteNotFound, id)
}
