package validatesignupstep

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/signup"
)

type Input struct {
	Step              int                    `json:"step"`
	Fields            map[string]interface{} `json:"fields"`
	UploadedDocuments []string               `json:"uploadedDocuments"`
}

type Output struct {
	Validation signup.StepResult `json:"validation"`
	CanAdvance bool              `json:"canAdvance"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"step":              {Type: "integer", Minimum: validation.Float(1), Maximum: validation.Float(4)},
			"fields":            {Type: "object"},
			"uploadedDocuments": {Type: "array", Items: &validation.Property{Type: "string"}},
		},
		Required:             []string{"step"},
		AdditionalProperties: true,
	}
}
