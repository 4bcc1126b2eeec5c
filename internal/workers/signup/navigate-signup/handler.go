package navigatesignup

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

const TaskType = "navigate-signup"

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

// Execute loads or starts the session, applies the action and saves the result.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	session, err := h.load(ctx, input)
	if err != nil {
		metrics.SignupTransitions.WithLabelValues(input.Action, "error").Inc()
		return nil, err
	}

	blockedErr, err := apply(&session.Wizard, input)
	if err != nil {
		metrics.SignupTransitions.WithLabelValues(input.Action, "error").Inc()
		return nil, err
	}

	if err := h.sessions.Save(ctx, session); err != nil {
		metrics.SignupTransitions.WithLabelValues(input.Action, "error").Inc()
		return nil, err
	}

	output := &Output{
		SessionID:         session.ID,
		UploadedDocuments: append([]string{}, session.Wizard.State.UploadedDocuments...),
		View:              session.Wizard.View(),
	}
	outcome := "ok"
	if blockedErr != nil {
		outcome = "blocked"
		output.Blocked = true
		output.Reason = blockedErr.Details
	}
	metrics.SignupTransitions.WithLabelValues(input.Action, outcome).Inc()

	h.logger.Info("signup navigated", map[string]interface{}{
		"sessionId":   session.ID,
		"action":      input.Action,
		"currentStep": int(output.CurrentStep),
		"progress":    output.Progress,
		"blocked":     output.Blocked,
	})
	return output, nil
}

// load returns the stored session, or an unsaved new one for start and for
// an empty sessionId. A new session is only written once its action applies.
func (h *Handler) load(ctx context.Context, input *Input) (*signup.Session, error) {
	if input.Action == ActionStart || input.SessionID == "" {
		return signup.NewSession(), nil
	}
	return h.sessions.Get(ctx, input.SessionID)
}

// apply runs one action against w. A refused transition is returned as the
// first value so the job can still complete.
func apply(w *signup.Wizard, input *Input) (*errors.StandardError, error) {
	var err error
	switch input.Action {
	case ActionStart, ActionUpdate:
		err = w.State.ApplyFields(input.Fields)
	case ActionAdvance:
		err = w.Advance()
	case ActionRetreat:
		err = w.Retreat()
	case ActionUploadDocument, ActionRemoveDocument:
		if !signup.InChecklist(input.DocumentName) {
			return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown document %q", input.DocumentName))
		}
		if input.Action == ActionUploadDocument {
			w.State.AddDocument(input.DocumentName)
		} else {
			w.State.RemoveDocument(input.DocumentName)
		}
	default:
		return nil, errors.NewInvalidActionError(input.Action)
	}

	if err == nil {
		return nil, nil
	}
	if errors.HasCode(err, errors.ErrCodeNavigationBlocked) {
		return errors.AsStandardError(err), nil
	}
	return nil, err
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
