// Package history stores and serves prior translations per source string.
//
// Records are read-only once written; the matcher only ever consumes the
// ordered slice a Store returns.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Record is one saved translation for a source string.
type Record struct {
	// ID is the opaque primary key (a ULID).
	ID string
	// Key identifies the source string; Locale the target language.
	Key    string
	Locale string
	// Text is the translation's serialized form in the string's format.
	Text string
	// Active marks the currently authoritative translation.
	Active    bool
	CreatedAt time.Time
}

// Store is a SQLite-backed translation history.
type Store struct {
	db      *sql.DB
	entropy *rand.Rand
}

// Open opens or creates the history database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translations (
		id         TEXT PRIMARY KEY,
		entity_key TEXT NOT NULL,
		locale     TEXT NOT NULL,
		text       TEXT NOT NULL,
		active     INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_translations_key_locale
		ON translations(entity_key, locale, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_translations_active
		ON translations(entity_key, locale, active);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Add saves a translation and returns the stored record.
func (s *Store) Add(ctx context.Context, key, locale, text string) (Record, error) {
	rec := Record{
		ID:        s.newID(),
		Key:       key,
		Locale:    locale,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translations (id, entity_key, locale, text, active, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		rec.ID, rec.Key, rec.Locale, rec.Text, rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Record{}, fmt.Errorf("insert translation: %w", err)
	}
	log.Debug().Str("id", rec.ID).Str("key", key).Str("locale", locale).Msg("history: added translation")
	return rec, nil
}

// List returns all saved translations for a string, newest first. ULIDs
// break creation-time ties in insertion order.
func (s *Store) List(ctx context.Context, key, locale string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entity_key, locale, text, active, created_at
		 FROM translations WHERE entity_key = ? AND locale = ?
		 ORDER BY created_at DESC, id DESC`, key, locale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Activate marks one record as the active translation for its string,
// clearing any previous active mark.
func (s *Store) Activate(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var key, locale string
	err = tx.QueryRowContext(ctx,
		`SELECT entity_key, locale FROM translations WHERE id = ?`, id).Scan(&key, &locale)
	if err == sql.ErrNoRows {
		return fmt.Errorf("translation not found: %s", id)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE translations SET active = 0 WHERE entity_key = ? AND locale = ?`, key, locale); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE translations SET active = 1 WHERE id = ?`, id); err != nil {
		return err
	}
	log.Debug().Str("id", id).Str("key", key).Str("locale", locale).Msg("history: activated translation")
	return tx.Commit()
}

// Active returns the active translation for a string, or nil when none is
// marked.
func (s *Store) Active(ctx context.Context, key, locale string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, entity_key, locale, text, active, created_at
		 FROM translations WHERE entity_key = ? AND locale = ? AND active = 1
		 LIMIT 1`, key, locale)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Stats returns the total record count and the number of distinct
// (key, locale) strings.
func (s *Store) Stats(ctx context.Context) (records, strings int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT entity_key || '/' || locale) FROM translations`).
		Scan(&records, &strings)
	return records, strings, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var active int
	var createdAt string
	if err := row.Scan(&rec.ID, &rec.Key, &rec.Locale, &rec.Text, &active, &createdAt); err != nil {
		return rec, err
	}
	rec.Active = active != 0
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return rec, nil
}
