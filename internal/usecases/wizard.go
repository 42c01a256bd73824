package usecases

import (
	"github.com/volatiletech/null/v8"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
)

// WizardEventKind tags an input arriving at the create-link wizard
type WizardEventKind string

const (
	EventStartCreate  WizardEventKind = "start_create"
	EventCancel       WizardEventKind = "cancel"
	EventText         WizardEventKind = "text"
	EventPickNetwork  WizardEventKind = "pick_network"
	EventPickDuration WizardEventKind = "pick_duration"
	EventPickNoTimer  WizardEventKind = "pick_no_timer"
	EventPickCurrency WizardEventKind = "pick_currency"
)

// WizardEvent is one user input; payload fields are meaningful per kind
type WizardEvent struct {
	Kind     WizardEventKind
	Text     string
	Network  string
	Duration int64
	Currency string
}

// WizardAction tells the bot layer what to do after a transition
type WizardAction string

const (
	// prompts
	ActionPromptAmount   WizardAction = "prompt_amount"
	ActionInvalidAmount  WizardAction = "invalid_amount"
	ActionPromptNetwork  WizardAction = "prompt_network"
	ActionPromptDuration WizardAction = "prompt_duration"
	ActionPromptCurrency WizardAction = "prompt_currency"

	// terminal outcomes
	ActionFinalize  WizardAction = "finalize"
	ActionCancelled WizardAction = "cancelled"
	// ActionStale: a button referenced wizard fields that are gone (flow was
	// cancelled or restarted concurrently); the user must start over.
	ActionStale WizardAction = "stale"
	// ActionShowMenu: input arrived with no active flow
	ActionShowMenu WizardAction = "show_menu"

	// support reply flow
	ActionPromptLink    WizardAction = "prompt_link"
	ActionPromptThread  WizardAction = "prompt_thread"
	ActionPromptMessage WizardAction = "prompt_message"
	ActionLinkDenied    WizardAction = "link_denied"
	ActionThreadUnknown WizardAction = "thread_unknown"
	ActionReplySent     WizardAction = "reply_sent"
)

// Transition is the pure step function of the create-link wizard:
// (state, event) -> (state, action). It never touches stores, which keeps the
// "field missing because wrong step" failure class out of the handlers: every
// state variant carries exactly the fields collected so far.
func Transition(state entities.WizardState, ev WizardEvent) (entities.WizardState, WizardAction) {
	switch ev.Kind {
	case EventStartCreate:
		// starting over clears anything pending
		return entities.WizardState{Step: entities.StepAwaitAmount}, ActionPromptAmount
	case EventCancel:
		return entities.IdleWizard(), ActionCancelled
	}

	switch state.Step {
	case entities.StepAwaitAmount:
		if ev.Kind != EventText {
			return state, ActionPromptAmount
		}
		if !entities.ValidAmount(ev.Text) {
			return state, ActionInvalidAmount
		}
		return entities.WizardState{Step: entities.StepAwaitNetwork, Amount: ev.Text}, ActionPromptNetwork

	case entities.StepAwaitNetwork:
		if ev.Kind != EventPickNetwork || !entities.ValidNetwork(ev.Network) {
			return state, ActionPromptNetwork
		}
		if state.Amount == "" {
			return entities.IdleWizard(), ActionStale
		}
		return entities.WizardState{
			Step:    entities.StepAwaitDuration,
			Amount:  state.Amount,
			Network: null.StringFrom(ev.Network),
		}, ActionPromptDuration

	case entities.StepAwaitDuration:
		if state.Amount == "" || !state.Network.Valid {
			return entities.IdleWizard(), ActionStale
		}
		switch ev.Kind {
		case EventPickDuration:
			if !entities.ValidDuration(ev.Duration) {
				return state, ActionPromptDuration
			}
			return state, ActionFinalize
		case EventPickNoTimer:
			return entities.WizardState{
				Step:    entities.StepAwaitCurrency,
				Amount:  state.Amount,
				Network: state.Network,
			}, ActionPromptCurrency
		default:
			return state, ActionPromptDuration
		}

	case entities.StepAwaitCurrency:
		if state.Amount == "" || !state.Network.Valid {
			return entities.IdleWizard(), ActionStale
		}
		// only stable currencies here: timer-less links show a fixed currency
		if ev.Kind != EventPickCurrency || (ev.Currency != string(entities.CurrencyUSDT) && ev.Currency != string(entities.CurrencyUSDC)) {
			return state, ActionPromptCurrency
		}
		return state, ActionFinalize

	default:
		// idle or a support-flow step owned by the reply wizard
		if ev.Kind == EventPickNetwork || ev.Kind == EventPickDuration ||
			ev.Kind == EventPickNoTimer || ev.Kind == EventPickCurrency {
			// stale button press from a cleared flow
			return state, ActionStale
		}
		return state, ActionShowMenu
	}
}
