package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	domainrepos "github.com/fuckinutkin/greenland/internal/domain/repositories"
)

func threadKey(linkID, threadID string) string {
	return linkID + ":" + threadID
}

type memoryThreadRepository struct {
	mu      sync.RWMutex
	threads map[string]*entities.Thread
	byLink  map[string][]string // linkID -> threadIDs in creation order
}

// NewMemoryThreadRepository creates the in-process thread store
func NewMemoryThreadRepository() domainrepos.ThreadRepository {
	return &memoryThreadRepository{
		threads: make(map[string]*entities.Thread),
		byLink:  make(map[string][]string),
	}
}

func (r *memoryThreadRepository) ensureLocked(linkID, threadID string, ownerID int64) *entities.Thread {
	key := threadKey(linkID, threadID)
	thread, ok := r.threads[key]
	if !ok {
		thread = &entities.Thread{LinkID: linkID, OwnerID: ownerID}
		r.threads[key] = thread
		r.byLink[linkID] = append(r.byLink[linkID], threadID)
	}
	return thread
}

func (r *memoryThreadRepository) EnsureThread(ctx context.Context, linkID, threadID string, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureLocked(linkID, threadID, ownerID)
	return nil
}

func (r *memoryThreadRepository) AppendMessage(ctx context.Context, linkID, threadID string, ownerID int64, from entities.MessageFrom, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	thread := r.ensureLocked(linkID, threadID, ownerID)

	ts := entities.NowMillis()
	if n := len(thread.Messages); n > 0 && thread.Messages[n-1].Ts > ts {
		ts = thread.Messages[n-1].Ts
	}

	thread.Messages = append(thread.Messages, entities.Message{
		From: from,
		Text: entities.TruncateMessage(text),
		Ts:   ts,
	})
	return nil
}

func (r *memoryThreadRepository) GetMessages(ctx context.Context, linkID, threadID string) ([]entities.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	thread, ok := r.threads[threadKey(linkID, threadID)]
	if !ok {
		return []entities.Message{}, nil
	}
	out := make([]entities.Message, len(thread.Messages))
	copy(out, thread.Messages)
	return out, nil
}

func (r *memoryThreadRepository) GetThread(ctx context.Context, linkID, threadID string) (*entities.Thread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	thread, ok := r.threads[threadKey(linkID, threadID)]
	if !ok {
		return nil, domainerrors.ErrThreadNotFound
	}

	out := entities.Thread{LinkID: thread.LinkID, OwnerID: thread.OwnerID}
	out.Messages = make([]entities.Message, len(thread.Messages))
	copy(out.Messages, thread.Messages)
	return &out, nil
}

func (r *memoryThreadRepository) ListThreadsForLink(ctx context.Context, linkID string) ([]entities.ThreadSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.ThreadSummary, 0, len(r.byLink[linkID]))
	for _, threadID := range r.byLink[linkID] {
		thread := r.threads[threadKey(linkID, threadID)]
		summary := entities.ThreadSummary{
			ThreadID:     threadID,
			MessageCount: len(thread.Messages),
		}
		if n := len(thread.Messages); n > 0 {
			summary.LastMessageTs = thread.Messages[n-1].Ts
		}
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTs > out[j].LastMessageTs
	})
	return out, nil
}
