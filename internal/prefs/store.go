package prefs

import (
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // embedded preference store

	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

// Preferences is the explicit application-state object for the UI flags
// the browser app kept in localStorage
type Preferences struct {
	DarkMode         bool `db:"dark_mode" json:"darkMode"`
	SidebarCollapsed bool `db:"sidebar_collapsed" json:"sidebarCollapsed"`
}

// Store persists Preferences in an embedded sqlite database: read on
// init, write on every change. Callers work against the in-memory copy.
type Store struct {
	db     *sqlx.DB
	logger logger.Logger

	mu      sync.Mutex
	current Preferences
}

// Open connects to the preference database, creates the schema if
// needed and loads the saved flags
func Open(path string, l logger.Logger) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)

	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}

	s := &Store{
		db:     db,
		logger: l,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}

	l.Info("Preference store ready", "path", path)
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS preferences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		dark_mode BOOLEAN NOT NULL DEFAULT 0,
		sidebar_collapsed BOOLEAN NOT NULL DEFAULT 0
	);

	INSERT OR IGNORE INTO preferences (id) VALUES (1);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create preference schema: %w", err)
	}

	return nil
}

func (s *Store) load() error {
	var p Preferences

	query := `SELECT dark_mode, sidebar_collapsed FROM preferences WHERE id = 1`

	if err := s.db.Get(&p, query); err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	return nil
}

// Get returns the current preferences
func (s *Store) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetDarkMode flips the dark mode flag and persists it
func (s *Store) SetDarkMode(on bool) error {
	return s.apply(func(p *Preferences) {
		p.DarkMode = on
	})
}

// SetSidebarCollapsed flips the sidebar flag and persists it
func (s *Store) SetSidebarCollapsed(collapsed bool) error {
	return s.apply(func(p *Preferences) {
		p.SidebarCollapsed = collapsed
	})
}

// Set replaces both flags at once and persists them
func (s *Store) Set(p Preferences) error {
	return s.apply(func(cur *Preferences) {
		*cur = p
	})
}

func (s *Store) apply(change func(*Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.current
	change(&updated)

	query := `UPDATE preferences SET dark_mode = ?, sidebar_collapsed = ? WHERE id = 1`

	if _, err := s.db.Exec(query, updated.DarkMode, updated.SidebarCollapsed); err != nil {
		s.logger.Error("Failed to persist preferences", "error", err)
		return fmt.Errorf("failed to persist preferences: %w", err)
	}

	s.current = updated
	return nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
