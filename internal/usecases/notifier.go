package usecases

import "context"

// AuditChannel selects which logging channel an audit message goes to
type AuditChannel string

const (
	AuditCreate AuditChannel = "create"
	AuditOpen   AuditChannel = "open"
)

// Notifier delivers fire-and-forget Telegram messages. Implementations must
// never be relied on for the primary operation: usecases swallow and log every
// error coming back from it.
type Notifier interface {
	NotifyOwner(ctx context.Context, ownerID int64, text string) error
	Audit(ctx context.Context, channel AuditChannel, text string) error
}

// NopNotifier discards all notifications (tests, local runs without a bot)
type NopNotifier struct{}

func (NopNotifier) NotifyOwner(ctx context.Context, ownerID int64, text string) error { return nil }
func (NopNotifier) Audit(ctx context.Context, channel AuditChannel, text string) error {
	return nil
}
