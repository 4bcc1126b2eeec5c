package signup

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"trustgrade-workers/internal/common/errors"
)

// Fields is the flat field bag edited across the wizard screens.
type Fields struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	ConfirmPassword     string `json:"confirmPassword"`
	Phone               string `json:"phone"`
	CompanyName         string `json:"companyName"`
	JobTitle            string `json:"jobTitle"`
	CompanySize         string `json:"companySize" validate:"omitempty,oneof=1-10 11-50 51-200 201-1000 1000+"`
	Industry            string `json:"industry" validate:"omitempty,oneof=technology finance healthcare manufacturing retail consulting other"`
	Website             string `json:"website"`
	BusinessType        string `json:"businessType" validate:"omitempty,oneof=corporation llc partnership sole-proprietorship nonprofit"`
	AgreeToTerms        bool   `json:"agreeToTerms"`
	SubscribeNewsletter bool   `json:"subscribeNewsletter"`
}

// FormState is the wizard's field bag plus completed steps and uploaded
// documents. The two lists behave as sets.
type FormState struct {
	Fields
	CompletedSteps    []Step          `json:"completedSteps"`
	UploadedDocuments []string        `json:"uploadedDocuments"`
	Sealed            SealedPasswords `json:"sealed"`
}

// StepResult explains a step validity check.
type StepResult struct {
	Step    Step     `json:"step"`
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
	Message string   `json:"message,omitempty"`
}

var validate = validator.New()

// IsStepValid reports whether step's required inputs are complete.
func (f *FormState) IsStepValid(step Step) bool {
	return f.CheckStep(step).Valid
}

// CheckStep validates step and lists what is missing.
func (f *FormState) CheckStep(step Step) StepResult {
	res := StepResult{Step: step}
	required := func(name, value string) {
		if value == "" {
			res.Missing = append(res.Missing, name)
		}
	}

	switch step {
	case Step1Personal:
		required("firstName", f.FirstName)
		required("lastName", f.LastName)
		required("email", f.Email)
		password, confirm := f.passwordPair()
		required("password", password)
		required("confirmPassword", confirm)
		required("phone", f.Phone)
		if confirm != "" && password != confirm {
			res.Message = PasswordMismatchMessage
		}
	case Step2Company:
		required("companyName", f.CompanyName)
		required("jobTitle", f.JobTitle)
		required("companySize", f.CompanySize)
		required("industry", f.Industry)
		required("businessType", f.BusinessType)
	case Step3Documents:
		for _, item := range Checklist {
			if item.Required && !f.HasDocument(item.Name) {
				res.Missing = append(res.Missing, item.Name)
			}
		}
	case Step4Final:
		if !f.AgreeToTerms {
			res.Missing = append(res.Missing, "agreeToTerms")
		}
	default:
		res.Message = "unknown step"
		return res
	}

	res.Valid = len(res.Missing) == 0 && res.Message == ""
	return res
}

// ApplyFields merges a JSON field patch into the form. Unknown fields and
// values outside the select options are rejected.
func (f *FormState) ApplyFields(patch map[string]interface{}) error {
	if len(patch) == 0 {
		return nil
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return errors.NewInvalidInputError(err.Error())
	}

	updated := f.Fields
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&updated); err != nil {
		return errors.NewInvalidInputError("invalid form fields: " + err.Error())
	}
	if err := validate.Struct(updated); err != nil {
		return errors.NewInvalidInputError(describeValidation(err))
	}
	f.Fields = updated
	if _, ok := patch["password"]; ok {
		f.Sealed.Password = ""
	}
	if _, ok := patch["confirmPassword"]; ok {
		f.Sealed.Confirm = ""
	}
	return nil
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+" must be one of: "+strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return strings.Join(msgs, "; ")
}

func (f *FormState) IsCompleted(step Step) bool {
	for _, s := range f.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// MarkCompleted adds step to the completed set; re-adding is a no-op.
func (f *FormState) MarkCompleted(step Step) {
	if f.IsCompleted(step) {
		return
	}
	f.CompletedSteps = append(f.CompletedSteps, step)
	sort.Slice(f.CompletedSteps, func(i, j int) bool { return f.CompletedSteps[i] < f.CompletedSteps[j] })
}

func (f *FormState) HasDocument(name string) bool {
	for _, d := range f.UploadedDocuments {
		if d == name {
			return true
		}
	}
	return false
}

// AddDocument records name as uploaded; re-adding is a no-op.
func (f *FormState) AddDocument(name string) {
	if !f.HasDocument(name) {
		f.UploadedDocuments = append(f.UploadedDocuments, name)
	}
}

func (f *FormState) RemoveDocument(name string) {
	for i, d := range f.UploadedDocuments {
		if d == name {
			f.UploadedDocuments = append(f.UploadedDocuments[:i], f.UploadedDocuments[i+1:]...)
			return
		}
	}
}
