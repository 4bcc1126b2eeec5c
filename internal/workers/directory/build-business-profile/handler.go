package buildbusinessprofile

import (
	"context"
	"strings"

	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/directory"
	"trustgrade-workers/internal/models"
	"trustgrade-workers/internal/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "build-business-profile"

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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	listing, err := h.lookup(ctx, input)
	if err != nil {
		return nil, err
	}

	p := profile.Build(*listing, h.config.Defaults)
	h.logger.Info("profile built", map[string]interface{}{
		"businessId": listing.ID,
		"slug":       listing.Slug,
		"trustGrade": listing.TrustGrade,
	})
	return &Output{Profile: p}, nil
}

func (h *Handler) lookup(ctx context.Context, input *Input) (*models.BusinessListing, error) {
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		return h.directory.ResolveSlug(ctx, slug)
	}
	if input.BusinessID > 0 {
		return h.directory.GetByID(ctx, input.BusinessID)
	}
	return nil, errors.NewInvalidInputError("slug or businessId is required")
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
