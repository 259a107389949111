package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

// SQLiteStore keeps state documents in one table of a SQLite database
// opened in WAL mode.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS entity_state (
		entity_id  TEXT NOT NULL,
		family     TEXT NOT NULL,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (entity_id, family)
	);`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(entityID string, f model.Family) (model.State, bool, error) {
	if err := checkKey(entityID, f); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM entity_state WHERE entity_id = ? AND family = ?`,
		entityID, string(f),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying state: %w", err)
	}
	st, err := model.DecodeState(f, []byte(payload))
	if err != nil {
		return nil, false, err
	}
	return st, true, nil
}

func (s *SQLiteStore) Set(entityID string, f model.Family, st model.State) error {
	if err := checkKey(entityID, f); err != nil {
		return err
	}
	data, err := model.EncodeState(f, st)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
	INSERT INTO entity_state (entity_id, family, payload, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (entity_id, family) DO UPDATE SET
		payload = excluded.payload,
		updated_at = excluded.updated_at`,
		entityID, string(f), string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(entityID string, f model.Family) error {
	if err := checkKey(entityID, f); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM entity_state WHERE entity_id = ? AND family = ?`, entityID, string(f)); err != nil {
		return fmt.Errorf("deleting state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Families(entityID string) ([]model.Family, error) {
	if err := checkKey(entityID, model.FamilyBalancete); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT family FROM entity_state WHERE entity_id = ?`, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing families: %w", err)
	}
	defer rows.Close()

	var out []model.Family
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning family: %w", err)
		}
		if f := model.Family(name); f.Valid() {
			out = append(out, f)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing families: %w", err)
	}
	return sortFamilies(out), nil
}
