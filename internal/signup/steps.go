package signup

import "trustgrade-workers/internal/models"

type Step int

const (
	Step1Personal  Step = 1
	Step2Company   Step = 2
	Step3Documents Step = 3
	Step4Final     Step = 4

	FirstStep = Step1Personal
	LastStep  = Step4Final
)

const PasswordMismatchMessage = "Passwords do not match"

// StepInfo describes one wizard screen.
type StepInfo struct {
	ID          Step   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var Steps = []StepInfo{
	{ID: Step1Personal, Title: "Personal Information", Description: "Tell us about yourself"},
	{ID: Step2Company, Title: "Company Details", Description: "Information about your business"},
	{ID: Step3Documents, Title: "Document Upload", Description: "Upload business verification documents"},
	{ID: Step4Final, Title: "Final Setup", Description: "Complete your account setup"},
}

// Checklist is the static set of sign-up verification documents.
var Checklist = []models.ChecklistItem{
	{Name: "Business License", Description: "Official business registration document", Required: true},
	{Name: "Tax ID Certificate", Description: "Federal tax identification document", Required: true},
	{Name: "Certificate of Incorporation", Description: "Legal incorporation certificate", Required: true},
	{Name: "Business Insurance", Description: "Proof of business liability insurance", Required: false},
}

var (
	CompanySizeOptions  = []string{"1-10", "11-50", "51-200", "201-1000", "1000+"}
	IndustryOptions     = []string{"technology", "finance", "healthcare", "manufacturing", "retail", "consulting", "other"}
	BusinessTypeOptions = []string{"corporation", "llc", "partnership", "sole-proprietorship", "nonprofit"}
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// InChecklist reports whether name is a known checklist document.
func InChecklist(name string) bool {
	for _, item := range Checklist {
		if item.Name == name {
			return true
		}
	}
	return false
}
