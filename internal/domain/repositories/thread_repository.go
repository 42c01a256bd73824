package repositories

import (
	"context"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
)

// ThreadRepository interface
type ThreadRepository interface {
	// EnsureThread creates an empty thread if it does not exist yet. Used to
	// pre-create the canonical thread when a link is issued.
	EnsureThread(ctx context.Context, linkID, threadID string, ownerID int64) error
	// AppendMessage creates the thread lazily on first use, truncates text to
	// the message cap and assigns a server-side timestamp.
	AppendMessage(ctx context.Context, linkID, threadID string, ownerID int64, from entities.MessageFrom, text string) error
	// GetMessages returns the ordered log. A missing thread yields an empty
	// slice, not an error: polling before the first message is a normal state.
	GetMessages(ctx context.Context, linkID, threadID string) ([]entities.Message, error)
	// GetThread returns the thread record, or ErrThreadNotFound.
	GetThread(ctx context.Context, linkID, threadID string) (*entities.Thread, error)
	// ListThreadsForLink returns per-thread digests sorted by last message
	// timestamp descending.
	ListThreadsForLink(ctx context.Context, linkID string) ([]entities.ThreadSummary, error)
}
