package models

type DocumentStatus string

const (
	DocumentVerified   DocumentStatus = "Verified"
	DocumentProcessing DocumentStatus = "Processing"
	DocumentUploading  DocumentStatus = "Uploading"
	DocumentRejected   DocumentStatus = "Rejected"
)

// DocumentRecord is a document as listed on the dashboard and in the wizard.
type DocumentRecord struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Status   DocumentStatus `json:"status"`
	Date     string         `json:"date"`
}

// ChecklistItem is one entry of the sign-up document checklist.
type ChecklistItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}
