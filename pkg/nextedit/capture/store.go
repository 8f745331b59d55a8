// Package capture – store.go implements a SQLite-backed store for compiled
// prompt requests, so inputs and the prompts built from them can be inspected
// and replayed offline.
package capture

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver.

	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

// ErrNotFound is returned by Get when no capture has the requested ID.
var ErrNotFound = errors.New("capture not found")

// Record is one captured compilation: the input it was built from, the
// format used, and the resulting prompt.
type Record struct {
	ID         string
	CreatedAt  time.Time
	Format     prompt.Format
	Input      *prompt.PromptInput
	Prompt     string
	TokenCount int
}

// Store provides persistent capture storage.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates a capture database at the given path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// initSchema creates the required tables and indices.
func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS captures (
			id          TEXT PRIMARY KEY,
			created_at  DATETIME NOT NULL,
			format      TEXT NOT NULL,
			input       TEXT NOT NULL,
			prompt      TEXT NOT NULL,
			token_count INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS captures_created_at ON captures(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Save stores one compilation and returns the ID assigned to it.
func (s *Store) Save(ctx context.Context, format prompt.Format, input *prompt.PromptInput, rendered string) (string, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("encoding input: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	tokens := prompt.EstimateTokens(len(rendered))

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO captures (id, created_at, format, input, prompt, token_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, now, format.String(), string(inputJSON), rendered, tokens)
	if err != nil {
		return "", fmt.Errorf("insert capture: %w", err)
	}

	s.logger.Debug("capture saved", "id", id, "format", format.String(), "tokens", tokens)
	return id, nil
}

// Get loads one capture by ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, format, input, prompt, token_count
		FROM captures WHERE id = ?
	`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List returns the most recent captures, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, format, input, prompt, token_count
		FROM captures ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query captures: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes one capture by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM captures WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete capture: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		record     Record
		formatName string
		inputJSON  string
	)
	if err := row.Scan(&record.ID, &record.CreatedAt, &formatName, &inputJSON, &record.Prompt, &record.TokenCount); err != nil {
		return nil, err
	}

	format, err := prompt.ParseFormat(formatName)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", record.ID, err)
	}
	record.Format = format

	record.Input = &prompt.PromptInput{}
	if err := json.Unmarshal([]byte(inputJSON), record.Input); err != nil {
		return nil, fmt.Errorf("capture %s: decoding input: %w", record.ID, err)
	}

	return &record, nil
}
