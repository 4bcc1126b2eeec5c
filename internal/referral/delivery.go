package referral

import (
	"context"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type EmailSender interface {
	SendText(ctx context.Context, to, subject, body string) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

// Delivery is the outcome of sharing a referral on one channel.
type Delivery struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Delivered bool   `json:"delivered"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Sharer sends referrals through whichever channels are configured. Failures
// are logged and reported, never returned.
type Sharer struct {
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewSharer(email EmailSender, sms SMSSender, log logger.Logger) *Sharer {
	return &Sharer{email: email, sms: sms, logger: log}
}

func (s *Sharer) Share(ctx context.Context, ref Referral, channel, recipient string) Delivery {
	d := Delivery{Channel: channel, Recipient: recipient}

	var (
		id  string
		err error
	)
	switch {
	case channel == ChannelEmail && s.email != nil:
		id, err = s.email.SendText(ctx, recipient, ref.EmailSubject, ref.EmailBody)
	case channel == ChannelSMS && s.sms != nil:
		id, err = s.sms.SendSMS(ctx, recipient, ref.SMSBody)
	default:
		d.Error = "channel " + channel + " is not enabled"
		s.logger.Info("referral share skipped", map[string]interface{}{"channel": channel})
		metrics.ReferralShares.WithLabelValues(channel, "false").Inc()
		return d
	}

	if err != nil {
		stdErr := errors.NewShareDeliveryFailedError(channel, err)
		d.Error = stdErr.Message + ": " + stdErr.Details
		s.logger.Warn("referral share failed", map[string]interface{}{
			"channel": channel,
			"error":   err.Error(),
		})
		metrics.ReferralShares.WithLabelValues(channel, "false").Inc()
		return d
	}

	d.Delivered = true
	d.MessageID = id
	metrics.ReferralShares.WithLabelValues(channel, "true").Inc()
	return d
}
