package builddashboard

import (
	"context"
	"fmt"

	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/dashboard"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "build-dashboard"

type Handler struct {
	config       *Config
	source       dashboard.Source
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(cfg *Config, source dashboard.Source, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		source:       source,
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
	for _, s := range input.Sections {
		if !contains(dashboard.AllSections, s) {
			return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown dashboard section %q", s))
		}
	}

	d, err := dashboard.Build(ctx, h.source, input.Sections)
	if err != nil {
		return nil, errors.NewExternalServiceError("dashboard source", err)
	}

	h.logger.Info("dashboard built", map[string]interface{}{
		"sections":     input.Sections,
		"trustGrade":   d.Trust.Grade,
		"overallScore": d.Trust.OverallScore,
	})
	return &Output{Dashboard: d}, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
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
