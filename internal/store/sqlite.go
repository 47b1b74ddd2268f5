// Package store provides the SQLite implementation of the Store interface.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/omoide/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	version atomic.Uint64
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	s.version.Store(1)
	return s, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id TEXT PRIMARY KEY,
		title TEXT,
		content TEXT NOT NULL,
		tags TEXT,
		type TEXT,
		date TEXT,
		metadata TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_memories_type ON memories(type);
	CREATE INDEX IF NOT EXISTS idx_memories_created_at ON memories(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Version returns the current snapshot version.
func (s *SQLiteStore) Version() uint64 {
	return s.version.Load()
}

func (s *SQLiteStore) bump() {
	s.version.Add(1)
}

// CreateMemory inserts a memory.
func (s *SQLiteStore) CreateMemory(ctx context.Context, m *models.Memory) error {
	tagsJSON, metadataJSON, err := encodeFields(m)
	if err != nil {
		return err
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO memories (id, title, content, tags, type, date, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Content, tagsJSON, m.Type, m.Date, metadataJSON, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create memory: %w", err)
	}
	s.bump()
	return nil
}

// GetMemory fetches a memory by id.
func (s *SQLiteStore) GetMemory(ctx context.Context, id string) (*models.Memory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, tags, type, date, metadata, created_at, updated_at
		 FROM memories WHERE id = ?`, id)
	m, err := scanMemory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("memory not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get memory: %w", err)
	}
	return m, nil
}

// UpdateMemory updates an existing memory.
func (s *SQLiteStore) UpdateMemory(ctx context.Context, m *models.Memory) error {
	tagsJSON, metadataJSON, err := encodeFields(m)
	if err != nil {
		return err
	}
	m.UpdatedAt = time.Now()

	result, err := s.db.ExecContext(ctx,
		`UPDATE memories SET title = ?, content = ?, tags = ?, type = ?, date = ?, metadata = ?, updated_at = ?
		 WHERE id = ?`,
		m.Title, m.Content, tagsJSON, m.Type, m.Date, metadataJSON, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update memory: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("memory not found: %s", m.ID)
	}
	s.bump()
	return nil
}

// DeleteMemory removes a memory by id.
func (s *SQLiteStore) DeleteMemory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("memory not found: %s", id)
	}
	s.bump()
	return nil
}

// ListMemories returns all memories and the current snapshot version.
// The version is read before the query: a concurrent mutation can make the
// data newer than the version, never staler, so the next pass reindexes.
func (s *SQLiteStore) ListMemories(ctx context.Context) ([]*models.Memory, uint64, error) {
	version := s.version.Load()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, tags, type, date, metadata, created_at, updated_at
		 FROM memories ORDER BY created_at DESC`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list memories: %w", err)
	}
	defer rows.Close()

	memories := make([]*models.Memory, 0)
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan memory: %w", err)
		}
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate memories: %w", err)
	}
	return memories, version, nil
}

// CountMemories returns the total number of stored memories.
func (s *SQLiteStore) CountMemories(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count memories: %w", err)
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeFields(m *models.Memory) (tagsJSON, metadataJSON []byte, err error) {
	if len(m.Tags) > 0 {
		tagsJSON, err = json.Marshal(m.Tags)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal tags: %w", err)
		}
	}
	if m.Metadata != nil {
		metadataJSON, err = json.Marshal(m.Metadata)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}
	return tagsJSON, metadataJSON, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMemory(row scanner) (*models.Memory, error) {
	var m models.Memory
	var tagsJSON, metadataJSON sql.NullString
	err := row.Scan(&m.ID, &m.Title, &m.Content, &tagsJSON, &m.Type, &m.Date,
		&metadataJSON, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &m.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &m.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return &m, nil
}
