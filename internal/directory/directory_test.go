package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/models"
)

func TestLoadSeed(t *testing.T) {
	records := seedRecords(t)
	assert.Len(t, records, 8)

	_, ok := Resolve(records, "kalaw-food-products")
	assert.True(t, ok)
}

func TestDecodeRecords_RejectsDuplicateIDs(t *testing.T) {
	raw := []byte(`[
		{"id":1,"name":"A","industry":"X","location":"Y","description":"","trustGrade":"A","trustPercentage":1,"verified":true,"rating":1,"reviewCount":0,"employees":"1-10","services":[],"logo":"A"},
		{"id":1,"name":"B","industry":"X","location":"Y","description":"","trustGrade":"A","trustPercentage":1,"verified":true,"rating":1,"reviewCount":0,"employees":"1-10","services":[],"logo":"B"}
	]`)
	_, err := DecodeRecords(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate business id 1")
}

func TestDecodeRecords_RejectsSchemaViolations(t *testing.T) {
	_, err := DecodeRecords([]byte(`[{"id":1,"name":"A","rating":7}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid business directory")
}

func TestMemoryRepository(t *testing.T) {
	repo, err := NewSeedRepository()
	require.NoError(t, err)
	ctx := context.Background()

	r, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "TechFlow Solutions", r.Name)

	r.Services[0] = "mutated"
	again, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Services[0])

	_, err = repo.GetByID(ctx, 99)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBusinessNotFound))

	_, err = NewMemoryRepository([]models.BusinessRecord{{ID: 1}, {ID: 1}})
	assert.Error(t, err)
}

func TestAssignSlugs_DisambiguatesInIDOrder(t *testing.T) {
	records := []models.BusinessRecord{
		{ID: 9, Name: "Acme Co."},
		{ID: 2, Name: "Acme Co"},
		{ID: 5, Name: "ACME-CO"},
		{ID: 1, Name: "Other"},
	}

	slugs, collisions := AssignSlugs(records)
	assert.Equal(t, "acme-co", slugs[2])
	assert.Equal(t, "acme-co-2", slugs[5])
	assert.Equal(t, "acme-co-3", slugs[9])
	assert.Equal(t, "other", slugs[1])
	assert.ElementsMatch(t, []int{5, 9}, collisions)
}

func TestAssignSlugs_SuffixDoesNotStealExistingSlug(t *testing.T) {
	records := []models.BusinessRecord{
		{ID: 1, Name: "Acme 2"},
		{ID: 2, Name: "Acme"},
		{ID: 3, Name: "Acme"},
	}
	slugs, _ := AssignSlugs(records)
	assert.Equal(t, "acme-2", slugs[1])
	assert.Equal(t, "acme", slugs[2])
	assert.Equal(t, "acme-3", slugs[3])
}

func TestDirectory_SearchAndResolve(t *testing.T) {
	repo, err := NewSeedRepository()
	require.NoError(t, err)
	dir := New(repo, logger.NewTestLogger(t))
	ctx := context.Background()

	listings, err := dir.Search(ctx, Criteria{Industry: "Technology", MinRating: 4})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "techflow-solutions", listings[0].Slug)
	assert.Equal(t, "/business/techflow-solutions", listings[0].ProfilePath)

	found, err := dir.ResolveSlug(ctx, "techflow-solutions")
	require.NoError(t, err)
	assert.Equal(t, "TechFlow Solutions", found.Name)

	_, err = dir.ResolveSlug(ctx, "nonexistent")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBusinessNotFound))

	all, err := dir.Listings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 8)

	byID, err := dir.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "kalaw-food-products", byID.Slug)
}

func TestDirectory_ResolveCollidingNames(t *testing.T) {
	repo, err := NewMemoryRepository([]models.BusinessRecord{
		{ID: 1, Name: "Twin Traders"},
		{ID: 2, Name: "Twin Traders!"},
	})
	require.NoError(t, err)
	dir := New(repo, logger.NewNoOpLogger())

	first, err := dir.ResolveSlug(context.Background(), "twin-traders")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := dir.ResolveSlug(context.Background(), "twin-traders-2")
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}
