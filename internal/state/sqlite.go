package state

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapcube/pkg/core"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite state store instance.
// If logger is nil, a discard logger is used.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens the database at path and applies pending migrations.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return core.WrapError(core.KindDataAccess, err, "failed to create state directory")
			}
		}
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return core.WrapError(core.KindDataAccess, err, "failed to open sqlite database")
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return core.WrapError(core.KindDataAccess, err, "failed to ping sqlite database")
	}

	s.db = db
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return core.WrapError(core.KindDataAccess, err, "failed to migrate %s", path)
	}
	s.logger.Debug("metastore opened", "path", path)
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Path returns the database path given to Open.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) opened() error {
	if s.db == nil {
		return core.Errorf(core.KindDataAccess, "database not opened")
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}
