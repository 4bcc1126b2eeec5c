package builddashboard

import (
	"context"
	"fmt"
	"testing"

	apperrors "trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/dashboard"
	"trustgrade-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct {
	*dashboard.EmbeddedSource
}

func (failingSource) TrustMetrics(context.Context) ([]models.TrustMetric, error) {
	return nil, fmt.Errorf("metrics backend down")
}

func createTestHandler(t *testing.T) *Handler {
	src, err := dashboard.NewEmbeddedSource()
	require.NoError(t, err)
	return NewHandler(&Config{}, src, logger.NewTestLogger(t))
}

func TestHandler_Execute_AllSections(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	d := output.Dashboard

	assert.NotEmpty(t, d.Stats)
	assert.NotEmpty(t, d.RecentActivity)
	assert.NotEmpty(t, d.TrustedPartners)
	assert.NotEmpty(t, d.Documents)
	assert.NotEmpty(t, d.SuggestedActions)
	assert.Equal(t, 71, d.Trust.OverallScore)
	assert.Equal(t, "B+", d.Trust.Grade)
	assert.Equal(t, "blue", d.Trust.GradeColor)
}

func TestHandler_Execute_SelectedSections(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{Sections: []string{dashboard.SectionPartners}})
	require.NoError(t, err)

	assert.NotEmpty(t, output.Dashboard.TrustedPartners)
	assert.Empty(t, output.Dashboard.Stats)
	assert.Empty(t, output.Dashboard.Trust.Grade)
	for _, p := range output.Dashboard.TrustedPartners {
		assert.NotEmpty(t, p.GradeColor)
	}
}

func TestHandler_Execute_UnknownSection(t *testing.T) {
	handler := createTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{Sections: []string{"weather"}})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput))
}

func TestHandler_Execute_SourceFailure(t *testing.T) {
	src, err := dashboard.NewEmbeddedSource()
	require.NoError(t, err)
	handler := NewHandler(&Config{}, failingSource{src}, logger.NewTestLogger(t))

	_, err = handler.Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeExternalService))
}
