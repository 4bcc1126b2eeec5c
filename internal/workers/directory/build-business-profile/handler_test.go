package buildbusinessprofile

import (
	"context"
	"testing"

	"trustgrade-workers/internal/common/config"
	apperrors "trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/directory"
	"trustgrade-workers/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) *Handler {
	repo, err := directory.NewSeedRepository()
	require.NoError(t, err)
	log := logger.NewTestLogger(t)
	cfg := LoadConfig(config.WorkerConfig{}, config.DefaultProfile())
	return NewHandler(cfg, directory.New(repo, log), log)
}

func TestHandler_Execute_BySlug(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Slug: "akhtar-industries"})
	require.NoError(t, err)
	p := output.Profile

	assert.Equal(t, "Akhtar Industries", p.Business.Name)
	assert.Equal(t, "AI", p.Initials)
	assert.Equal(t, "green", p.GradeColor)
	assert.Equal(t, "https://www.akhtarindustries.com", p.Contact.WebsiteURL)
	assert.Equal(t, "tel:+921234567890", p.Contact.TelLink)
	assert.Equal(t, 8, p.Stats.YearsActive)
	assert.Equal(t, "2 days ago", p.Stats.LastUpdated)
	require.Len(t, p.TrustBreakdown, 3)
	assert.Equal(t, profile.StatusStrong, p.TrustBreakdown[0].Status)
	assert.Equal(t, profile.StatusModerate, p.TrustBreakdown[1].Status)
	assert.Equal(t, profile.StatusStrong, p.TrustBreakdown[2].Status)
}

func TestHandler_Execute_ByIDFallsBackToDefaultContact(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{BusinessID: 5})
	require.NoError(t, err)
	p := output.Profile

	assert.Equal(t, "kalaw-food-products", p.Business.Slug)
	assert.Equal(t, "+92 123 456 7890", p.Contact.Phone)
	assert.Equal(t, "contact@akhtarindustries.com", p.Contact.Email)
	assert.Equal(t, profile.StatusModerate, p.TrustBreakdown[0].Status)
	assert.Equal(t, "blue", p.GradeColor)
}

func TestHandler_Execute_Errors(t *testing.T) {
	handler := createTestHandler(t)

	tests := []struct {
		name  string
		input *Input
		code  apperrors.ErrorCode
	}{
		{"unknown slug", &Input{Slug: "missing"}, apperrors.ErrCodeBusinessNotFound},
		{"unknown id", &Input{BusinessID: 99}, apperrors.ErrCodeBusinessNotFound},
		{"no reference", &Input{}, apperrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, output)
			assert.True(t, apperrors.HasCode(err, tt.code))
		})
	}
}
