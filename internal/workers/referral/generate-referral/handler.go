package generatereferral

import (
	"context"
	"fmt"
	"strings"

	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/referral"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "generate-referral"

type Handler struct {
	config       *Config
	generator    *referral.Generator
	sharer       *referral.Sharer
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(cfg *Config, generator *referral.Generator, sharer *referral.Sharer, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		generator:    generator,
		sharer:       sharer,
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

// Execute issues the referral and attempts each requested share. Delivery
// failures are reported per share and never fail the job.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := checkShares(input.Shares); err != nil {
		return nil, err
	}

	ref := h.generator.Generate(strings.TrimSpace(input.BusinessSlug))
	deliveries := make([]referral.Delivery, 0, len(input.Shares))
	for _, share := range input.Shares {
		deliveries = append(deliveries, h.sharer.Share(ctx, ref, share.Channel, strings.TrimSpace(share.Recipient)))
	}

	h.logger.Info("referral generated", map[string]interface{}{
		"businessSlug": input.BusinessSlug,
		"code":         ref.Code,
		"shares":       len(deliveries),
	})
	return &Output{Referral: ref, Deliveries: deliveries}, nil
}

func checkShares(shares []Share) error {
	for i, share := range shares {
		recipient := strings.TrimSpace(share.Recipient)
		switch share.Channel {
		case referral.ChannelEmail:
			if !validation.ValidateEmail(recipient) {
				return errors.NewInvalidInputError(fmt.Sprintf("shares[%d]: invalid email %q", i, recipient))
			}
		case referral.ChannelSMS:
			if !validation.ValidatePhone(recipient) {
				return errors.NewInvalidInputError(fmt.Sprintf("shares[%d]: invalid phone number %q", i, recipient))
			}
		default:
			return errors.NewInvalidInputError(fmt.Sprintf("shares[%d]: unsupported channel %q", i, share.Channel))
		}
	}
	return nil
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
