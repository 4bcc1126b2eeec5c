package builddashboard

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/dashboard"
)

// Input selects dashboard sections; empty means all of them.
type Input struct {
	Sections []string `json:"sections"`
}

type Output struct {
	Dashboard *dashboard.Dashboard `json:"dashboard"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"sections": {Type: "array", Items: &validation.Property{Type: "string", Enum: dashboard.AllSections}},
		},
		AdditionalProperties: true,
	}
}
