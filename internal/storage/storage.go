// Package storage persists guest records and the undelivered-message
// ledger in SQLite. Every mutation is a single-row statement, so each
// guest's state changes atomically and survives restarts.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"rsvp-whatsapp/internal/models"
)

// ErrNotFound is returned when no guest exists for a phone number.
var ErrNotFound = errors.New("guest not found")

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at the given path and
// initializes the schema.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS guests (
		phone TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'not_responded',
		attendees INTEGER NOT NULL DEFAULT 0,
		session_active INTEGER NOT NULL DEFAULT 0,
		awaiting_count INTEGER NOT NULL DEFAULT 0,
		invited_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		responded_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_guests_status ON guests(status);

	CREATE TABLE IF NOT EXISTS undelivered (
		phone TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		failed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get retrieves a guest by normalized phone number.
func (s *Store) Get(phone string) (*models.Guest, error) {
	row := s.db.QueryRow(`
		SELECT phone, name, category, status, attendees,
		       session_active, awaiting_count, invited_at, responded_at
		FROM guests WHERE phone = ?`, phone)

	g, err := scanGuest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query guest: %w", err)
	}
	return g, nil
}

// Upsert inserts a guest or refreshes an existing one. Import
// semantics: name, category and the pre-filled attendee count are
// updated, but an answer the guest already gave is never overwritten.
func (s *Store) Upsert(g models.Guest) error {
	if g.Status == "" {
		g.Status = models.RSVPNotResponded
	}
	_, err := s.db.Exec(`
		INSERT INTO guests (phone, name, category, status, attendees)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(phone) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			attendees = CASE WHEN guests.status = 'not_responded'
				THEN excluded.attendees ELSE guests.attendees END`,
		g.Phone, g.Name, g.Category, g.Status, g.Attendees)
	if err != nil {
		return fmt.Errorf("failed to upsert guest: %w", err)
	}
	return nil
}

// OpenSession marks the guest's conversation as open and awaiting a
// choice, creating the record if the number is unknown.
func (s *Store) OpenSession(phone string) error {
	_, err := s.db.Exec(`
		INSERT INTO guests (phone, status, session_active, awaiting_count)
		VALUES (?, 'not_responded', 1, 0)
		ON CONFLICT(phone) DO UPDATE SET
			session_active = 1,
			awaiting_count = 0`, phone)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	return nil
}

// SetSession updates the durable session flags for a guest.
func (s *Store) SetSession(phone string, active, awaitingCount bool) error {
	res, err := s.db.Exec(`
		UPDATE guests SET session_active = ?, awaiting_count = ?
		WHERE phone = ?`, active, awaitingCount, phone)
	if err != nil {
		return fmt.Errorf("failed to update session flags: %w", err)
	}
	return requireRow(res)
}

// UpdateRSVP records a final answer and closes the session in the same
// statement.
func (s *Store) UpdateRSVP(phone string, status models.RSVPStatus, attendees int) error {
	res, err := s.db.Exec(`
		UPDATE guests SET status = ?, attendees = ?,
			session_active = 0, awaiting_count = 0,
			responded_at = CURRENT_TIMESTAMP
		WHERE phone = ?`, status, attendees, phone)
	if err != nil {
		return fmt.Errorf("failed to update RSVP: %w", err)
	}
	return requireRow(res)
}

// ListAll returns all guests ordered by name.
func (s *Store) ListAll() ([]models.Guest, error) {
	return s.list(`
		SELECT phone, name, category, status, attendees,
		       session_active, awaiting_count, invited_at, responded_at
		FROM guests ORDER BY name, phone`)
}

// ListByStatus returns guests with the given RSVP status.
func (s *Store) ListByStatus(status models.RSVPStatus) ([]models.Guest, error) {
	return s.list(`
		SELECT phone, name, category, status, attendees,
		       session_active, awaiting_count, invited_at, responded_at
		FROM guests WHERE status = ? ORDER BY name, phone`, status)
}

func (s *Store) list(query string, args ...any) ([]models.Guest, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	var guests []models.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

// RecordFailure adds a guest to the undelivered ledger. Inserting the
// same phone again is a no-op, so a retried broadcast never duplicates
// entries.
func (s *Store) RecordFailure(phone, name, category string) error {
	_, err := s.db.Exec(`
		INSERT INTO undelivered (phone, name, category)
		VALUES (?, ?, ?)
		ON CONFLICT(phone) DO NOTHING`, phone, name, category)
	if err != nil {
		return fmt.Errorf("failed to record undelivered message: %w", err)
	}
	return nil
}

// ListFailures returns the undelivered ledger, oldest first.
func (s *Store) ListFailures() ([]models.UndeliveredMessage, error) {
	rows, err := s.db.Query(`
		SELECT phone, name, category, failed_at
		FROM undelivered ORDER BY failed_at, phone`)
	if err != nil {
		return nil, fmt.Errorf("failed to query undelivered messages: %w", err)
	}
	defer rows.Close()

	var entries []models.UndeliveredMessage
	for rows.Next() {
		var m models.UndeliveredMessage
		if err := rows.Scan(&m.Phone, &m.Name, &m.Category, &m.FailedAt); err != nil {
			return nil, fmt.Errorf("failed to scan undelivered message: %w", err)
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGuest(row scanner) (*models.Guest, error) {
	var g models.Guest
	var respondedAt sql.NullTime
	err := row.Scan(&g.Phone, &g.Name, &g.Category, &g.Status, &g.Attendees,
		&g.SessionActive, &g.AwaitingCount, &g.InvitedAt, &respondedAt)
	if err != nil {
		return nil, err
	}
	if respondedAt.Valid {
		g.RespondedAt = respondedAt.Time
	}
	return &g, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
