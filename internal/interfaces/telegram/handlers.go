package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
	"go.uber.org/zap"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	"github.com/fuckinutkin/greenland/internal/usecases"
	"github.com/fuckinutkin/greenland/pkg/logger"
)

const myLinksLimit = 20

// fmtUser renders the audit-log label for a sender
func fmtUser(u *tele.User) string {
	if u == nil {
		return "unknown"
	}
	if u.Username != "" {
		return fmt.Sprintf("@%s | id:%d", u.Username, u.ID)
	}
	return fmt.Sprintf("id:%d", u.ID)
}

func (b *Bot) onStart(c tele.Context) error {
	// /start always resets the per-user wizard
	_, _ = b.opts.Wizard.Apply(context.Background(), c.Sender().ID, fmtUser(c.Sender()), usecases.WizardEvent{Kind: usecases.EventCancel})
	return c.Send("Welcome to Greenland 🌿\nCreate a payment link and share it in one tap.", b.menu)
}

func (b *Bot) onCancel(c tele.Context) error {
	if c.Callback() != nil {
		_ = c.Respond()
	}
	res, err := b.opts.Wizard.Apply(context.Background(), c.Sender().ID, fmtUser(c.Sender()), usecases.WizardEvent{Kind: usecases.EventCancel})
	if err != nil {
		return b.sendFailure(c, err)
	}
	return b.renderWizard(c, res)
}

func (b *Bot) onCreateLink(c tele.Context) error {
	if c.Callback() != nil {
		_ = c.Respond()
	}
	res, err := b.opts.Wizard.Apply(context.Background(), c.Sender().ID, fmtUser(c.Sender()), usecases.WizardEvent{Kind: usecases.EventStartCreate})
	if err != nil {
		return b.sendFailure(c, err)
	}
	return b.renderWizard(c, res)
}

func (b *Bot) onPickNetwork(c tele.Context) error {
	_ = c.Respond()
	return b.applyAndRender(c, usecases.WizardEvent{Kind: usecases.EventPickNetwork, Network: c.Data()})
}

func (b *Bot) onPickDuration(c tele.Context) error {
	_ = c.Respond()
	seconds, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		seconds = 0
	}
	return b.applyAndRender(c, usecases.WizardEvent{Kind: usecases.EventPickDuration, Duration: seconds})
}

func (b *Bot) onPickNoTimer(c tele.Context) error {
	_ = c.Respond()
	return b.applyAndRender(c, usecases.WizardEvent{Kind: usecases.EventPickNoTimer})
}

func (b *Bot) onPickCurrency(c tele.Context) error {
	_ = c.Respond()
	return b.applyAndRender(c, usecases.WizardEvent{Kind: usecases.EventPickCurrency, Currency: c.Data()})
}

func (b *Bot) applyAndRender(c tele.Context, ev usecases.WizardEvent) error {
	res, err := b.opts.Wizard.Apply(context.Background(), c.Sender().ID, fmtUser(c.Sender()), ev)
	if err != nil {
		return b.sendFailure(c, err)
	}
	return b.renderWizard(c, res)
}

// onText feeds free text to the reply router first, then to the active wizard
func (b *Bot) onText(c tele.Context) error {
	msg := c.Message()

	if msg.ReplyTo != nil {
		if route, ok := MatchReplyRoute(msg.ReplyTo.Text); ok {
			return b.routeOwnerReply(c, route, msg.Text)
		}
	}

	return b.applyAndRender(c, usecases.WizardEvent{Kind: usecases.EventText, Text: msg.Text})
}

// routeOwnerReply pushes a reply-to-forwarded-message into the thread. A
// non-owner reply (someone forwarded the support message elsewhere) is dropped
// without acknowledgement, as is a reply to a stale link.
func (b *Bot) routeOwnerReply(c tele.Context, route ReplyRoute, text string) error {
	err := b.opts.Support.OwnerReply(context.Background(), c.Sender().ID, route.LinkID, route.ThreadID, text)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotOwner) || errors.Is(err, domainerrors.ErrLinkNotFound) {
			logger.Debug(context.Background(), "reply dropped",
				zap.Int64("user_id", c.Sender().ID),
				zap.String("link_id", route.LinkID),
				zap.Error(err))
			return nil
		}
		return b.sendFailure(c, err)
	}
	return c.Send("✅ Sent to website support chat")
}

func (b *Bot) onMyLinks(c tele.Context) error {
	if c.Callback() != nil {
		_ = c.Respond()
	}

	links, err := b.opts.Links.ListLinks(context.Background(), c.Sender().ID, myLinksLimit)
	if err != nil {
		return b.sendFailure(c, err)
	}
	if len(links) == 0 {
		return c.Send("You have no links yet. Create one 👇", b.menu)
	}

	return c.Send(b.formatLinkList(links), &tele.SendOptions{DisableWebPagePreview: true})
}

func (b *Bot) formatLinkList(links []*entities.Link) string {
	var sb strings.Builder
	sb.WriteString("Your links:\n")
	for _, link := range links {
		sb.WriteString("\n")
		sb.WriteString(formatLinkLine(link, b.opts.Links.ShareURL(link.ID)))
	}
	return sb.String()
}

func formatLinkLine(link *entities.Link, url string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%s — $%s", link.ID, link.Amount)
	if link.Network.Valid {
		fmt.Fprintf(&sb, " · %s", strings.ToUpper(link.Network.String))
	}
	switch {
	case link.DurationSeconds.Valid:
		fmt.Fprintf(&sb, " · ⏱ %s", usecases.FormatDuration(link.DurationSeconds.Int64))
	case link.Currency.Valid:
		fmt.Fprintf(&sb, " · %s", strings.ToUpper(link.Currency.String))
	}
	fmt.Fprintf(&sb, " · opens: %d\n%s\n", link.Opens, url)
	return sb.String()
}

// onThreads lists the support threads of one of the caller's links
// usage: /threads <linkID>
func (b *Bot) onThreads(c tele.Context) error {
	linkID := strings.TrimSpace(c.Message().Payload)
	if linkID == "" {
		return c.Send("Usage: /threads <link ID>")
	}

	threads, err := b.opts.Support.ListThreads(context.Background(), c.Sender().ID, linkID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotOwner) || errors.Is(err, domainerrors.ErrLinkNotFound) {
			// same wording for both: do not confirm foreign links exist
			return c.Send("Unknown link ID.")
		}
		return b.sendFailure(c, err)
	}
	return c.Send(formatThreadList(linkID, threads))
}

func formatThreadList(linkID string, threads []entities.ThreadSummary) string {
	if len(threads) == 0 {
		return fmt.Sprintf("Link #%s has no support threads yet.", linkID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Threads for link #%s:\n", linkID)
	for _, th := range threads {
		fmt.Fprintf(&sb, "\n• %s — %d message(s)", th.ThreadID, th.MessageCount)
	}
	sb.WriteString("\n\nReply with /reply to answer one of them.")
	return sb.String()
}

func (b *Bot) onReplyCommand(c tele.Context) error {
	res := b.opts.Wizard.StartReply(c.Sender().ID)
	return b.renderWizard(c, res)
}

func (b *Bot) renderWizard(c tele.Context, res usecases.WizardResult) error {
	switch res.Action {
	case usecases.ActionPromptAmount:
		return c.Send("💰 Enter the amount (e.g. 12.5):", cancelKeyboard())
	case usecases.ActionInvalidAmount:
		return c.Send("That doesn't look like a positive number. Try again, e.g. 12.5")
	case usecases.ActionPromptNetwork:
		return c.Send("🌐 Pick a network:", networkKeyboard())
	case usecases.ActionPromptDuration:
		return c.Send("⏱ Pick a timer:", durationKeyboard())
	case usecases.ActionPromptCurrency:
		return c.Send("💱 Pick a currency:", currencyKeyboard())

	case usecases.ActionFinalize:
		if err := c.Send(
			fmt.Sprintf("Here's your link:\n%s", res.Link.URL),
			&tele.SendOptions{DisableWebPagePreview: true},
		); err != nil {
			return err
		}
		return c.Send("Back to menu 👇", b.menu)

	case usecases.ActionCancelled:
		return c.Send("Cancelled.", b.menu)
	case usecases.ActionStale:
		return c.Send("That button is no longer active. Start over 👇", b.menu)

	case usecases.ActionPromptLink:
		return c.Send("Send the link ID you want to answer for:", cancelKeyboard())
	case usecases.ActionLinkDenied:
		return c.Send("Unknown link ID. Try again or /cancel.")
	case usecases.ActionPromptThread:
		return c.Send("Send the thread ID (or just send 'main'):", cancelKeyboard())
	case usecases.ActionThreadUnknown:
		return c.Send("No such thread. Check /threads <link ID> and try again.")
	case usecases.ActionPromptMessage:
		return c.Send("Send your reply text:", cancelKeyboard())
	case usecases.ActionReplySent:
		return c.Send("✅ Sent to website support chat")

	default:
		return c.Send("Use the menu 👇", b.menu)
	}
}

func (b *Bot) sendFailure(c tele.Context, err error) error {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) && appErr.Status < 500 {
		return c.Send("⚠️ " + appErr.Message)
	}

	logger.Error(context.Background(), "bot handler failed",
		zap.Int64("user_id", c.Sender().ID), zap.Error(err))
	return c.Send("Something went wrong. Please try again.")
}
