package simulateupload

import (
	"context"
	"strings"
	"sync/atomic"

	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/upload"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "simulate-document-upload"

const defaultCategory = "General"

type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(cfg *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeJob(job, GetInputSchema(), &input); err != nil {
		timer.Failed(string(h.errorHandler.HandleJobError(ctx, client, job, err).Code))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		timer.Failed(string(h.errorHandler.HandleJobError(ctx, client, job, err).Code))
		return
	}

	h.completeJob(ctx, client, job, output)
	timer.Completed()
}

// Execute runs one simulated upload to completion or until ctx ends.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	name := strings.TrimSpace(input.DocumentName)
	if name == "" {
		return nil, errors.NewInvalidInputError("documentName is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = defaultCategory
	}

	task := upload.NewTask(name, category, h.config.Upload, h.logger)
	var updates int32
	task.OnProgress(func(s upload.Snapshot) {
		atomic.AddInt32(&updates, 1)
		h.logger.Debug("upload progress", map[string]interface{}{
			"uploadId": s.ID,
			"percent":  s.Percent,
			"status":   string(s.Document.Status),
		})
	})

	snap, err := task.Run(ctx)
	if err != nil {
		task.Cancel()
		return nil, err
	}

	h.logger.Info("document upload verified", map[string]interface{}{
		"uploadId": snap.ID,
		"document": snap.Document.Name,
		"category": snap.Document.Category,
	})
	return &Output{Upload: snap, ProgressUpdates: int(atomic.LoadInt32(&updates))}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
