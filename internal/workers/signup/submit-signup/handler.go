package submitsignup

import (
	"context"

	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/signup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "submit-signup"

type Handler struct {
	config       *Config
	sessions     signup.SessionStore
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(cfg *Config, sessions signup.SessionStore, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		sessions:     sessions,
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

// Execute submits the wizard from its final step and discards the session.
// Nothing is persisted and no account is created.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	session, err := h.sessions.Get(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Wizard.State.ApplyFields(input.Fields); err != nil {
		return nil, err
	}

	ack, err := session.Wizard.Submit()
	if err != nil {
		metrics.SignupTransitions.WithLabelValues("submit", "blocked").Inc()
		// keep the field edits so the user can fix and resubmit
		if saveErr := h.sessions.Save(ctx, session); saveErr != nil {
			h.logger.Warn("failed to save session after refused submit", map[string]interface{}{
				"sessionId": session.ID,
				"error":     saveErr.Error(),
			})
		}
		return nil, err
	}

	if err := h.sessions.Delete(ctx, session.ID); err != nil {
		h.logger.Warn("failed to discard submitted session", map[string]interface{}{
			"sessionId": session.ID,
			"error":     err.Error(),
		})
	}
	metrics.SignupTransitions.WithLabelValues("submit", "ok").Inc()

	h.logger.Info("signup submitted", map[string]interface{}{
		"sessionId": session.ID,
		"company":   ack.Company,
	})
	return &Output{SessionID: session.ID, Acknowledgment: *ack}, nil
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
