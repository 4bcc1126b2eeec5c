package signup

import (
	"fmt"
	"strings"

	"trustgrade-workers/internal/common/errors"
)

const (
	StatusCompleted = "completed"
	StatusCurrent   = "current"
	StatusPending   = "pending"

	SubmittedMessage = "Account created successfully! Welcome to the platform."
)

// Wizard is the linear four-step sign-up flow.
type Wizard struct {
	State   FormState `json:"state"`
	Current Step      `json:"currentStep"`
}

type StepStatus struct {
	Step   Step   `json:"step"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// View is the navigation state a client renders.
type View struct {
	CurrentStep    Step         `json:"currentStep"`
	CompletedSteps []Step       `json:"completedSteps"`
	StepStatuses   []StepStatus `json:"stepStatuses"`
	Progress       int          `json:"progress"`
	CanAdvance     bool         `json:"canAdvance"`
	CanRetreat     bool         `json:"canRetreat"`
	Validation     StepResult   `json:"validation"`
}

type Acknowledgment struct {
	Submitted bool   `json:"submitted"`
	Message   string `json:"message"`
	Email     string `json:"email"`
	Company   string `json:"company"`
}

func NewWizard() *Wizard {
	return &Wizard{Current: FirstStep}
}

func (w *Wizard) CanAdvance() bool {
	return w.State.IsStepValid(w.Current)
}

func (w *Wizard) CanRetreat() bool {
	return w.Current > FirstStep
}

// Advance completes the current step and moves to the next one. An invalid
// step leaves the wizard unchanged.
func (w *Wizard) Advance() error {
	res := w.State.CheckStep(w.Current)
	if !res.Valid {
		return errors.NewNavigationBlockedError(blockedReason(res))
	}
	w.State.MarkCompleted(w.Current)
	if w.Current < LastStep {
		w.Current++
	}
	return nil
}

func (w *Wizard) Retreat() error {
	if !w.CanRetreat() {
		return errors.NewNavigationBlockedError("already on the first step")
	}
	w.Current--
	return nil
}

// Submit finishes the flow from the final step. No account is created.
func (w *Wizard) Submit() (*Acknowledgment, error) {
	if w.Current != LastStep {
		return nil, errors.NewNavigationBlockedError(fmt.Sprintf("submit is only allowed on step %d, currently on step %d", LastStep, w.Current))
	}
	res := w.State.CheckStep(LastStep)
	if !res.Valid {
		return nil, errors.NewStepIncompleteError(int(LastStep), res.Missing)
	}
	w.State.MarkCompleted(LastStep)
	return &Acknowledgment{
		Submitted: true,
		Message:   SubmittedMessage,
		Email:     w.State.Email,
		Company:   w.State.CompanyName,
	}, nil
}

// Progress is the completed share of steps in percent.
func (w *Wizard) Progress() int {
	return len(w.State.CompletedSteps) * 100 / int(LastStep)
}

func (w *Wizard) StepStatuses() []StepStatus {
	out := make([]StepStatus, len(Steps))
	for i, s := range Steps {
		status := StatusPending
		switch {
		case w.State.IsCompleted(s.ID):
			status = StatusCompleted
		case s.ID == w.Current:
			status = StatusCurrent
		}
		out[i] = StepStatus{Step: s.ID, Title: s.Title, Status: status}
	}
	return out
}

func (w *Wizard) View() View {
	completed := append([]Step{}, w.State.CompletedSteps...)
	return View{
		CurrentStep:    w.Current,
		CompletedSteps: completed,
		StepStatuses:   w.StepStatuses(),
		Progress:       w.Progress(),
		CanAdvance:     w.CanAdvance(),
		CanRetreat:     w.CanRetreat(),
		Validation:     w.State.CheckStep(w.Current),
	}
}

func blockedReason(res StepResult) string {
	parts := []string{fmt.Sprintf("step %d is incomplete", res.Step)}
	if len(res.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(res.Missing, ", "))
	}
	if res.Message != "" {
		parts = append(parts, res.Message)
	}
	return strings.Join(parts, "; ")
}
