package navigatesignup

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/signup"
)

const (
	ActionStart          = "start"
	ActionUpdate         = "update"
	ActionAdvance        = "advance"
	ActionRetreat        = "retreat"
	ActionUploadDocument = "upload-document"
	ActionRemoveDocument = "remove-document"
)

var Actions = []string{ActionStart, ActionUpdate, ActionAdvance, ActionRetreat, ActionUploadDocument, ActionRemoveDocument}

type Input struct {
	SessionID    string                 `json:"sessionId"`
	Action       string                 `json:"action"`
	Fields       map[string]interface{} `json:"fields"`
	DocumentName string                 `json:"documentName"`
}

// Output is the wizard view after the action. Blocked transitions leave the
// wizard where it was and explain why.
type Output struct {
	SessionID         string   `json:"sessionId"`
	UploadedDocuments []string `json:"uploadedDocuments"`
	Blocked           bool     `json:"blocked"`
	Reason            string   `json:"reason,omitempty"`
	signup.View
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"sessionId":    {Type: "string", MaxLength: validation.Int(64)},
			"action":       {Type: "string", Enum: Actions},
			"fields":       {Type: "object"},
			"documentName": {Type: "string", MaxLength: validation.Int(100)},
		},
		Required:             []string{"action"},
		AdditionalProperties: true,
	}
}
