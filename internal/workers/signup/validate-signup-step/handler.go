package validatesignupstep

import (
	"context"
	"fmt"

	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/signup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "validate-signup-step"

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

// Execute checks one step of a form snapshot. An incomplete step is a normal
// result, not an error.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	step := signup.Step(input.Step)
	if !step.Valid() {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("step must be between %d and %d, got %d", signup.FirstStep, signup.LastStep, input.Step))
	}

	var form signup.FormState
	if err := form.ApplyFields(input.Fields); err != nil {
		return nil, err
	}
	for _, doc := range input.UploadedDocuments {
		if !signup.InChecklist(doc) {
			return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown document %q", doc))
		}
		form.AddDocument(doc)
	}

	result := form.CheckStep(step)
	h.logger.Debug("step validated", map[string]interface{}{
		"step":    input.Step,
		"valid":   result.Valid,
		"missing": result.Missing,
	})
	return &Output{Validation: result, CanAdvance: result.Valid}, nil
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
