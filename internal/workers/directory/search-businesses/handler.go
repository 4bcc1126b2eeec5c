package searchbusinesses

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

const TaskType = "search-businesses"

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

// Execute converts the filter controls into criteria and runs the directory search.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	criteria, err := toCriteria(input)
	if err != nil {
		return nil, err
	}

	listings, err := h.directory.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	h.logger.Info("directory searched", map[string]interface{}{
		"query":        criteria.Query,
		"industry":     criteria.Industry,
		"location":     criteria.Location,
		"size":         criteria.Size,
		"grade":        criteria.Grade,
		"minRating":    criteria.MinRating,
		"verifiedOnly": criteria.VerifiedOnly,
		"total":        len(listings),
	})

	return &Output{Businesses: listings, Total: len(listings)}, nil
}

func toCriteria(input *Input) (directory.Criteria, error) {
	size, err := directory.ParseSize(input.Size)
	if err != nil {
		return directory.Criteria{}, err
	}
	minRating, err := directory.ParseMinRating(input.MinRating)
	if err != nil {
		return directory.Criteria{}, err
	}
	return directory.Criteria{
		Query:        strings.TrimSpace(input.Query),
		Industry:     input.Industry,
		Location:     input.Location,
		Size:         size,
		Grade:        input.Grade,
		MinRating:    minRating,
		VerifiedOnly: input.VerifiedOnly,
	}, nil
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
