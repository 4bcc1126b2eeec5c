package submitsignup

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/signup"
)

// Input may carry the last field edits of the final screen, applied before submitting.
type Input struct {
	SessionID string                 `json:"sessionId"`
	Fields    map[string]interface{} `json:"fields"`
}

type Output struct {
	SessionID string `json:"sessionId"`
	signup.Acknowledgment
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"sessionId": {Type: "string", MinLength: validation.Int(1), MaxLength: validation.Int(64)},
			"fields":    {Type: "object"},
		},
		Required:             []string{"sessionId"},
		AdditionalProperties: true,
	}
}
