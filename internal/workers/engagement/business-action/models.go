package businessaction

import "trustgrade-workers/internal/common/validation"

const (
	ActionContact         = "contact"
	ActionReport          = "report"
	ActionConnect         = "connect"
	ActionVerify          = "verify"
	ActionDeleteDocument  = "delete-document"
	ActionReplaceDocument = "replace-document"
	ActionViewDocuments   = "view-documents"
	ActionCall            = "call"
	ActionVisitWebsite    = "visit-website"

	ActionSaveProfile       = "save-profile"
	ActionSaveNotifications = "save-notifications"
	ActionSavePrivacy       = "save-privacy"
)

var Actions = []string{
	ActionContact, ActionReport, ActionConnect, ActionVerify,
	ActionDeleteDocument, ActionReplaceDocument, ActionViewDocuments,
	ActionCall, ActionVisitWebsite,
	ActionSaveProfile, ActionSaveNotifications, ActionSavePrivacy,
}

type Input struct {
	Action       string `json:"action"`
	BusinessSlug string `json:"businessSlug"`
	DocumentName string `json:"documentName"`
}

// Output acknowledges the action. TelLink and WebsiteURL are filled for call
// and visit-website; nothing is dialled or opened.
type Output struct {
	Action       string `json:"action"`
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message"`
	TelLink      string `json:"telLink,omitempty"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"action":       {Type: "string", MinLength: validation.Int(1)},
			"businessSlug": {Type: "string", MaxLength: validation.Int(200)},
			"documentName": {Type: "string", MaxLength: validation.Int(200)},
		},
		Required:             []string{"action"},
		AdditionalProperties: true,
	}
}
