package businessaction

import (
	"context"
	"fmt"

	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/directory"
	"trustgrade-workers/internal/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "business-action"

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

// Execute logs and acknowledges a stubbed action.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if !isAction(input.Action) {
		return nil, errors.NewInvalidActionError(input.Action)
	}

	output := &Output{Action: input.Action, Acknowledged: true}
	switch input.Action {
	case ActionCall, ActionVisitWebsite:
		contact, err := h.contact(ctx, input.BusinessSlug)
		if err != nil {
			return nil, err
		}
		if input.Action == ActionCall {
			output.TelLink = contact.TelLink
			output.Message = "Call " + contact.Phone
		} else {
			output.WebsiteURL = contact.WebsiteURL
			output.Message = "Visit " + contact.WebsiteURL
		}
	default:
		output.Message = fmt.Sprintf("%s acknowledged", input.Action)
	}

	metrics.BusinessActions.WithLabelValues(input.Action).Inc()
	h.logger.Info("business action requested", map[string]interface{}{
		"action":       input.Action,
		"businessSlug": input.BusinessSlug,
		"documentName": input.DocumentName,
	})
	return output, nil
}

func (h *Handler) contact(ctx context.Context, slug string) (profile.ContactInfo, error) {
	if slug == "" {
		return profile.ContactInfo{}, errors.NewInvalidInputError("businessSlug is required for call and visit-website")
	}
	listing, err := h.directory.ResolveSlug(ctx, slug)
	if err != nil {
		return profile.ContactInfo{}, err
	}
	return profile.Build(*listing, h.config.Profile).Contact, nil
}

func isAction(action string) bool {
	for _, a := range Actions {
		if a == action {
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
