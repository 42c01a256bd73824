package usecases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	domainRepos "github.com/fuckinutkin/greenland/internal/domain/repositories"
	"github.com/fuckinutkin/greenland/pkg/logger"
	"github.com/fuckinutkin/greenland/pkg/metrics"
)

type SupportUsecase struct {
	linkRepo   domainRepos.LinkRepository
	threadRepo domainRepos.ThreadRepository
	notifier   Notifier
}

func NewSupportUsecase(
	linkRepo domainRepos.LinkRepository,
	threadRepo domainRepos.ThreadRepository,
	notifier Notifier,
) *SupportUsecase {
	return &SupportUsecase{
		linkRepo:   linkRepo,
		threadRepo: threadRepo,
		notifier:   notifier,
	}
}

// VisitorSend appends a visitor message and forwards it to the owner as a
// Telegram message carrying a parsable identifier header, so a plain reply to
// it can be routed back (see the telegram reply router).
func (uc *SupportUsecase) VisitorSend(ctx context.Context, linkID, threadID, text string) error {
	link, err := uc.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return err
	}

	clean := entities.TruncateMessage(text)
	if err := uc.threadRepo.AppendMessage(ctx, linkID, threadID, link.OwnerID, entities.MessageFromVisitor, clean); err != nil {
		return err
	}
	metrics.SupportMessages.WithLabelValues(string(entities.MessageFromVisitor)).Inc()

	header := fmt.Sprintf("🆘 SUPPORT\nLink ID: %s\nThread: %s\n---\n", link.ID, threadID)
	if err := uc.notifier.NotifyOwner(ctx, link.OwnerID, header+clean); err != nil {
		metrics.NotifyFailures.WithLabelValues("support_forward").Inc()
		logger.Warn(ctx, "support forward failed",
			zap.String("link_id", linkID), zap.String("thread_id", threadID), zap.Error(err))
	}
	return nil
}

// OwnerReply appends an owner message after verifying that userID actually
// owns the link. Non-owners get ErrNotOwner; the bot layer drops it silently,
// the HTTP layer surfaces it.
func (uc *SupportUsecase) OwnerReply(ctx context.Context, userID int64, linkID, threadID, text string) error {
	link, err := uc.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return err
	}
	if link.OwnerID != userID {
		return domainerrors.ErrNotOwner
	}

	if threadID == "" {
		threadID = entities.CanonicalThreadID
	}

	if err := uc.threadRepo.AppendMessage(ctx, linkID, threadID, link.OwnerID, entities.MessageFromOwner, text); err != nil {
		return err
	}
	metrics.SupportMessages.WithLabelValues(string(entities.MessageFromOwner)).Inc()
	return nil
}

// Poll returns the thread log, empty when the thread has no messages yet
func (uc *SupportUsecase) Poll(ctx context.Context, linkID, threadID string) ([]entities.Message, error) {
	return uc.threadRepo.GetMessages(ctx, linkID, threadID)
}

// ListThreads returns per-thread digests for a link, owner-gated
func (uc *SupportUsecase) ListThreads(ctx context.Context, userID int64, linkID string) ([]entities.ThreadSummary, error) {
	link, err := uc.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.OwnerID != userID {
		return nil, domainerrors.ErrNotOwner
	}
	return uc.threadRepo.ListThreadsForLink(ctx, linkID)
}

// ThreadExists reports whether the thread has been created, used by the
// explicit reply wizard to validate a thread choice.
func (uc *SupportUsecase) ThreadExists(ctx context.Context, linkID, threadID string) (bool, error) {
	_, err := uc.threadRepo.GetThread(ctx, linkID, threadID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domainerrors.ErrThreadNotFound) {
		return false, nil
	}
	return false, err
}
