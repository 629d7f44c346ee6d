package todo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DatabaseFile is the name of the SQLite file inside the data directory.
const DatabaseFile = "flow.db"

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL,
	priority TEXT NOT NULL,
	due_date TEXT,
	project_path TEXT,
	created_at TEXT NOT NULL,
	tags TEXT
);

CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT,
	project_path TEXT,
	created_at TEXT NOT NULL,
	tags TEXT
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_path);
CREATE INDEX IF NOT EXISTS idx_notes_project ON notes(project_path);
`

var pragmas = []string{
	"PRAGMA busy_timeout = 5000",
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
}

// MissingIDPolicy decides what mutations do when the target id does not exist.
type MissingIDPolicy int

const (
	// IgnoreMissing makes complete, start, reopen, update and delete succeed
	// without doing anything when the id does not exist.
	IgnoreMissing MissingIDPolicy = iota

	// RejectMissing makes those operations return ErrTaskNotFound or
	// ErrNoteNotFound instead.
	RejectMissing
)

// Options configures how the store is opened.
type Options struct {
	// MissingIDs selects the missing-id policy for mutations.
	// Point lookups (GetTask, GetNote) always report missing ids.
	MissingIDs MissingIDPolicy

	// OnDecodeIssue is called once for every stored value that had to be
	// replaced with a default while reading. Reading the same value again
	// does not call it again. It may be nil.
	OnDecodeIssue func(DecodeIssue)

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Store provides access to tasks and notes in a SQLite database.
// It is meant for a single process; it does no locking of its own.
type Store struct {
	db            *sqlx.DB
	path          string
	missingIDs    MissingIDPolicy
	onDecodeIssue func(DecodeIssue)
	now           func() time.Time
	issues        []DecodeIssue
	seen          map[DecodeIssue]bool
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Opening an existing database is safe and leaves its data
// untouched.
func Open(path string, opts Options) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Store{
		db:            db,
		path:          path,
		missingIDs:    opts.MissingIDs,
		onDecodeIssue: opts.OnDecodeIssue,
		now:           now,
	}, nil
}

// OpenDir opens the store file inside dir.
func OpenDir(dir string, opts Options) (*Store, error) {
	return Open(filepath.Join(dir, DatabaseFile), opts)
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DecodeIssues returns the distinct decode issues seen since the store was
// opened or since the last ResetDecodeIssues.
func (s *Store) DecodeIssues() []DecodeIssue {
	return append([]DecodeIssue(nil), s.issues...)
}

// ResetDecodeIssues forgets previously seen decode issues, so they are
// reported again the next time they are read.
func (s *Store) ResetDecodeIssues() {
	s.issues = nil
	s.seen = nil
}

func (s *Store) collect(d *decoder) {
	for _, issue := range d.issues {
		if s.seen[issue] {
			continue
		}
		if s.seen == nil {
			s.seen = make(map[DecodeIssue]bool)
		}
		s.seen[issue] = true
		s.issues = append(s.issues, issue)
		if s.onDecodeIssue != nil {
			s.onDecodeIssue(issue)
		}
	}
}

// checkAffected applies the missing-id policy to a mutation result.
func (s *Store) checkAffected(affected int64, notFound error, id int64) error {
	if affected == 0 && s.missingIDs == RejectMissing {
		return fmt.Errorf("%w: %d", notFound, id)
	}
	return nil
}
