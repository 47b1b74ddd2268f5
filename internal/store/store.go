// Package store defines the persistence interface for memories.
package store

import (
	"context"

	"github.com/hyperjump/omoide/internal/models"
)

// Store defines memory persistence operations. List returns an immutable
// snapshot together with a version that increases on every mutation; the
// search engine keys its reindexing and memoization on that version.
type Store interface {
	CreateMemory(ctx context.Context, m *models.Memory) error
	GetMemory(ctx context.Context, id string) (*models.Memory, error)
	UpdateMemory(ctx context.Context, m *models.Memory) error
	DeleteMemory(ctx context.Context, id string) error

	// ListMemories returns all memories and the current snapshot version.
	ListMemories(ctx context.Context) ([]*models.Memory, uint64, error)

	CountMemories(ctx context.Context) (int64, error)

	Close() error
}
