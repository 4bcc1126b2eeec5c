package resolvebusinessslug

import (
	"context"
	"strings"

	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/directory"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "resolve-business-slug"

type Handler struct {
	config       *Config
	directory    *directory.Directory
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(cfg *Config, dir *directory.Directory, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		directory:    dir,
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

// Execute looks the slug up exactly as given; slugs are already lower-case.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, errors.NewInvalidInputError("slug is required")
	}

	listing, err := h.directory.ResolveSlug(ctx, slug)
	if err != nil {
		h.logger.Warn("slug not resolved", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
		return nil, err
	}

	h.logger.Info("slug resolved", map[string]interface{}{
		"slug":       slug,
		"businessId": listing.ID,
	})
	return &Output{Business: *listing}, nil
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
