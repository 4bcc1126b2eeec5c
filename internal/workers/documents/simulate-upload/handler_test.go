package simulateupload

import (
	"context"
	"testing"
	"time"

	"trustgrade-workers/internal/common/config"
	apperrors "trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/models"
	"trustgrade-workers/internal/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T, opts upload.Options) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second, Upload: opts}, logger.NewTestLogger(t))
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.WorkerConfig{Timeout: 20000}, config.UploadConfig{TickInterval: 200, Step: 10, VerifyDelay: 2500})

	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, upload.DefaultOptions, cfg.Upload)
}

func TestHandler_Execute_RunsToVerified(t *testing.T) {
	handler := createTestHandler(t, upload.Options{Tick: time.Millisecond, Step: 25, VerifyDelay: time.Millisecond})

	output, err := handler.Execute(context.Background(), &Input{DocumentName: "Trade License", Category: "Legal"})
	require.NoError(t, err)

	assert.Equal(t, upload.StateDone, output.Upload.State)
	assert.Equal(t, 100, output.Upload.Percent)
	assert.Equal(t, models.DocumentVerified, output.Upload.Document.Status)
	assert.Equal(t, "Legal", output.Upload.Document.Category)
	assert.NotEmpty(t, output.Upload.Document.Date)
	// start, four progress steps, finish
	assert.Equal(t, 6, output.ProgressUpdates)
}

func TestHandler_Execute_DefaultCategory(t *testing.T) {
	handler := createTestHandler(t, upload.Options{Tick: time.Millisecond, Step: 100, VerifyDelay: 0})

	output, err := handler.Execute(context.Background(), &Input{DocumentName: "Bank Statement"})
	require.NoError(t, err)
	assert.Equal(t, "General", output.Upload.Document.Category)
}

func TestHandler_Execute_Timeout(t *testing.T) {
	handler := createTestHandler(t, upload.Options{Tick: time.Hour, Step: 10})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	output, err := handler.Execute(ctx, &Input{DocumentName: "Tax ID Certificate"})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUploadTimeout))
}

func TestHandler_Execute_Cancelled(t *testing.T) {
	handler := createTestHandler(t, upload.Options{Tick: time.Hour, Step: 10})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Execute(ctx, &Input{DocumentName: "Tax ID Certificate"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUploadCancelled))
}

func TestHandler_Execute_RequiresName(t *testing.T) {
	handler := createTestHandler(t, upload.DefaultOptions)

	_, err := handler.Execute(context.Background(), &Input{DocumentName: "  "})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidInput))
}
