package entities

import "github.com/volatiletech/null/v8"

// WizardStep tags the per-user conversation state. Each step carries only the
// fields collected up to that point (see WizardState).
type WizardStep string

const (
	StepIdle WizardStep = "idle"

	// create-link wizard
	StepAwaitAmount   WizardStep = "await_amount"
	StepAwaitNetwork  WizardStep = "await_network"
	StepAwaitDuration WizardStep = "await_duration"
	StepAwaitCurrency WizardStep = "await_currency"

	// explicit support-reply wizard
	StepAwaitLink    WizardStep = "await_link"
	StepAwaitThread  WizardStep = "await_thread"
	StepAwaitMessage WizardStep = "await_message"
)

// WizardState is the per-user transient wizard snapshot. At most one wizard is
// active per user; starting a new flow or cancelling resets it to StepIdle.
type WizardState struct {
	Step    WizardStep
	Amount  string
	Network null.String

	// support-reply flow targets
	LinkID   string
	ThreadID string
}

// IdleWizard returns the zero wizard state
func IdleWizard() WizardState {
	return WizardState{Step: StepIdle}
}

// InProgress reports whether any wizard flow is active
func (s WizardState) InProgress() bool {
	return s.Step != StepIdle && s.Step != ""
}
