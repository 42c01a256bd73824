package telegram

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	tele "gopkg.in/telebot.v4"
	"go.uber.org/zap"

	"github.com/fuckinutkin/greenland/internal/usecases"
	"github.com/fuckinutkin/greenland/pkg/logger"
)

// sender is the slice of tele.Bot the notifier needs
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Notifier pushes owner DMs and audit-channel messages through the bot.
// Telegram hiccups are retried with backoff; callers treat the final error as
// advisory (usecases log and swallow it).
type Notifier struct {
	bot             sender
	createLogChatID int64
	openLogChatID   int64
}

// NewNotifier creates a notifier. A zero chat ID disables that audit channel.
func NewNotifier(bot sender, createLogChatID, openLogChatID int64) *Notifier {
	return &Notifier{
		bot:             bot,
		createLogChatID: createLogChatID,
		openLogChatID:   openLogChatID,
	}
}

// NotifyOwner DMs the link owner. Owners who never started the bot are
// unreachable; Telegram rejects the send and the error surfaces to the caller.
func (n *Notifier) NotifyOwner(ctx context.Context, ownerID int64, text string) error {
	return n.send(ctx, tele.ChatID(ownerID), text)
}

// Audit posts to the configured log channel for the given event kind
func (n *Notifier) Audit(ctx context.Context, channel usecases.AuditChannel, text string) error {
	var chatID int64
	switch channel {
	case usecases.AuditCreate:
		chatID = n.createLogChatID
	case usecases.AuditOpen:
		chatID = n.openLogChatID
	}
	if chatID == 0 {
		return nil
	}
	return n.send(ctx, tele.ChatID(chatID), text)
}

func (n *Notifier) send(ctx context.Context, to tele.Recipient, text string) error {
	return retry.Do(
		func() error {
			_, err := n.bot.Send(to, text, &tele.SendOptions{DisableWebPagePreview: true})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn(ctx, "telegram send retry",
				zap.Uint("attempt", attempt), zap.Error(err))
		}),
	)
}
