package buildbusinessprofile

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/profile"
)

// Input identifies the business by route slug or, failing that, by id.
type Input struct {
	Slug       string `json:"slug"`
	BusinessID int    `json:"businessId"`
}

type Output struct {
	Profile *profile.Profile `json:"profile"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"slug":       {Type: "string", MaxLength: validation.Int(200)},
			"businessId": {Type: "integer", Minimum: validation.Float(1)},
		},
		AdditionalProperties: true,
	}
}
