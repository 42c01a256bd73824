package usecases

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/volatiletech/null/v8"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
)

// WizardUsecase keeps one in-memory conversation state per Telegram user and
// drives both the create-link wizard and the support reply wizard.
type WizardUsecase struct {
	mu       sync.RWMutex
	sessions map[int64]entities.WizardState

	links   *LinkUsecase
	support *SupportUsecase
}

func NewWizardUsecase(links *LinkUsecase, support *SupportUsecase) *WizardUsecase {
	return &WizardUsecase{
		sessions: make(map[int64]entities.WizardState),
		links:    links,
		support:  support,
	}
}

func (uc *WizardUsecase) State(userID int64) entities.WizardState {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if s, ok := uc.sessions[userID]; ok {
		return s
	}
	return entities.IdleWizard()
}

func (uc *WizardUsecase) setState(userID int64, state entities.WizardState) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if state.Step == entities.StepIdle {
		delete(uc.sessions, userID)
		return
	}
	uc.sessions[userID] = state
}

// WizardResult is what the bot layer renders after an input was applied.
type WizardResult struct {
	Action WizardAction
	// Link is set when Action is ActionFinalize
	Link *CreateLinkOutput
}

// Apply feeds one event into the create-link wizard and runs the side effect
// when the flow completes. OwnerLabel goes to the audit log verbatim.
func (uc *WizardUsecase) Apply(ctx context.Context, userID int64, ownerLabel string, ev WizardEvent) (WizardResult, error) {
	state := uc.State(userID)

	// text while the support reply wizard is active belongs to it
	if ev.Kind == EventText && state.InProgress() && isReplyStep(state.Step) {
		return uc.applyReply(ctx, userID, state, ev.Text)
	}
	if ev.Kind == EventCancel && isReplyStep(state.Step) {
		uc.setState(userID, entities.IdleWizard())
		return WizardResult{Action: ActionCancelled}, nil
	}

	next, action := Transition(state, ev)
	if action != ActionFinalize {
		uc.setState(userID, next)
		return WizardResult{Action: action}, nil
	}

	input := CreateLinkInput{
		OwnerID:    userID,
		OwnerLabel: ownerLabel,
		Amount:     next.Amount,
		Network:    next.Network.String,
	}
	switch ev.Kind {
	case EventPickDuration:
		input.Duration = null.Int64From(ev.Duration)
	case EventPickCurrency:
		input.Currency = ev.Currency
	}

	out, err := uc.links.CreateLink(ctx, input)
	if err != nil {
		// keep the collected fields so the user can retry the last button
		uc.setState(userID, next)
		return WizardResult{}, err
	}
	uc.setState(userID, entities.IdleWizard())
	return WizardResult{Action: ActionFinalize, Link: out}, nil
}

// StartReply opens the support reply wizard: link id, then thread, then text.
func (uc *WizardUsecase) StartReply(userID int64) WizardResult {
	uc.setState(userID, entities.WizardState{Step: entities.StepAwaitLink})
	return WizardResult{Action: ActionPromptLink}
}

func isReplyStep(step entities.WizardStep) bool {
	switch step {
	case entities.StepAwaitLink, entities.StepAwaitThread, entities.StepAwaitMessage:
		return true
	}
	return false
}

func (uc *WizardUsecase) applyReply(ctx context.Context, userID int64, state entities.WizardState, text string) (WizardResult, error) {
	text = strings.TrimSpace(text)

	switch state.Step {
	case entities.StepAwaitLink:
		link, err := uc.links.GetLink(ctx, text)
		if err != nil {
			if errors.Is(err, domainerrors.ErrLinkNotFound) {
				return WizardResult{Action: ActionLinkDenied}, nil
			}
			return WizardResult{}, err
		}
		if link.OwnerID != userID {
			// same answer as unknown: do not confirm the link exists
			return WizardResult{Action: ActionLinkDenied}, nil
		}
		uc.setState(userID, entities.WizardState{Step: entities.StepAwaitThread, LinkID: link.ID})
		return WizardResult{Action: ActionPromptThread}, nil

	case entities.StepAwaitThread:
		threadID := text
		if threadID == "" || strings.EqualFold(threadID, entities.CanonicalThreadID) {
			threadID = entities.CanonicalThreadID
		} else {
			ok, err := uc.support.ThreadExists(ctx, state.LinkID, threadID)
			if err != nil {
				return WizardResult{}, err
			}
			if !ok {
				return WizardResult{Action: ActionThreadUnknown}, nil
			}
		}
		uc.setState(userID, entities.WizardState{
			Step:     entities.StepAwaitMessage,
			LinkID:   state.LinkID,
			ThreadID: threadID,
		})
		return WizardResult{Action: ActionPromptMessage}, nil

	case entities.StepAwaitMessage:
		if text == "" {
			return WizardResult{Action: ActionPromptMessage}, nil
		}
		if err := uc.support.OwnerReply(ctx, userID, state.LinkID, state.ThreadID, text); err != nil {
			return WizardResult{}, err
		}
		uc.setState(userID, entities.IdleWizard())
		return WizardResult{Action: ActionReplySent}, nil
	}

	return WizardResult{Action: ActionShowMenu}, nil
}
