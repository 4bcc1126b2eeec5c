package simulateupload

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/upload"
)

type Input struct {
	DocumentName string `json:"documentName"`
	Category     string `json:"category"`
}

type Output struct {
	Upload upload.Snapshot `json:"upload"`
	// ProgressUpdates counts the state changes observed while the upload ran.
	ProgressUpdates int `json:"progressUpdates"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"documentName": {Type: "string", MinLength: validation.Int(1), MaxLength: validation.Int(200)},
			"category":     {Type: "string", MaxLength: validation.Int(100)},
		},
		Required:             []string{"documentName"},
		AdditionalProperties: true,
	}
}
