package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/hyperjump/omoide/internal/models"
)

// ImportFile reads a memory export file and stores its entries. The file may
// hold a single memory object or an array of them. Entries without an id get
// one assigned; entries whose id already exists are updated in place. Returns
// the number of memories imported.
func ImportFile(ctx context.Context, s Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read import file: %w", err)
	}

	inputs, err := decodeImport(data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse import file %s: %w", path, err)
	}

	imported := 0
	for i, in := range inputs {
		if in.Content == "" {
			return imported, fmt.Errorf("import entry %d has no content", i)
		}
		m := &models.Memory{
			ID:       in.ID,
			Title:    in.Title,
			Content:  in.Content,
			Tags:     in.Tags,
			Type:     in.Type,
			Date:     in.Date,
			Metadata: in.Metadata,
		}
		if m.ID == "" {
			m.ID = uuid.New().String()
		} else if _, err := s.GetMemory(ctx, m.ID); err == nil {
			if err := s.UpdateMemory(ctx, m); err != nil {
				return imported, err
			}
			imported++
			continue
		}
		if err := s.CreateMemory(ctx, m); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func decodeImport(data []byte) ([]models.MemoryInput, error) {
	var many []models.MemoryInput
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}
	var one models.MemoryInput
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []models.MemoryInput{one}, nil
}
