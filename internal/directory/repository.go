package directory

import (
	"context"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/models"
)

// Repository is the read-only data access interface for business records.
type Repository interface {
	List(ctx context.Context) ([]models.BusinessRecord, error)
	GetByID(ctx context.Context, id int) (*models.BusinessRecord, error)
}

// MemoryRepository serves a fixed set of records.
type MemoryRepository struct {
	records []models.BusinessRecord
	byID    map[int]int
}

func NewMemoryRepository(records []models.BusinessRecord) (*MemoryRepository, error) {
	if err := checkUniqueIDs(records); err != nil {
		return nil, err
	}
	repo := &MemoryRepository{
		records: make([]models.BusinessRecord, len(records)),
		byID:    make(map[int]int, len(records)),
	}
	for i, r := range records {
		repo.records[i] = cloneRecord(r)
		repo.byID[r.ID] = i
	}
	return repo, nil
}

// NewSeedRepository returns a MemoryRepository over the embedded directory.
func NewSeedRepository() (*MemoryRepository, error) {
	records, err := LoadSeed()
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(records)
}

func (m *MemoryRepository) List(ctx context.Context) ([]models.BusinessRecord, error) {
	out := make([]models.BusinessRecord, len(m.records))
	for i, r := range m.records {
		out[i] = cloneRecord(r)
	}
	return out, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id int) (*models.BusinessRecord, error) {
	i, ok := m.byID[id]
	if !ok {
		return nil, errors.NewBusinessNotFoundError(itoa(id))
	}
	r := cloneRecord(m.records[i])
	return &r, nil
}

// cloneRecord copies the services slice so callers cannot alter stored records.
func cloneRecord(r models.BusinessRecord) models.BusinessRecord {
	if r.Services != nil {
		r.Services = append([]string(nil), r.Services...)
	}
	return r
}
