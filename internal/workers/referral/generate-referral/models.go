package generatereferral

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/referral"
)

type Share struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
}

// Input names the referring business; Shares is optional and only delivered on
// channels enabled in config.
type Input struct {
	BusinessSlug string  `json:"businessSlug"`
	Shares       []Share `json:"shares"`
}

type Output struct {
	Referral   referral.Referral   `json:"referral"`
	Deliveries []referral.Delivery `json:"deliveries"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"businessSlug": {Type: "string", MaxLength: validation.Int(200)},
			"shares": {Type: "array", Items: &validation.Property{
				Type: "object",
				Properties: map[string]validation.Property{
					"channel":   {Type: "string", Enum: []string{referral.ChannelEmail, referral.ChannelSMS}},
					"recipient": {Type: "string", MinLength: validation.Int(1)},
				},
				Required: []string{"channel", "recipient"},
			}},
		},
		AdditionalProperties: true,
	}
}
