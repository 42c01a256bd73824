package repositories

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	domainrepos "github.com/fuckinutkin/greenland/internal/domain/repositories"
)

// Redis key layout:
//
//	thread:msgs:<linkID>:<threadID>   list of JSON messages, append order
//	thread:owner:<linkID>:<threadID>  owner ID, set on first message
//	thread:index:<linkID>             set of thread IDs for the link
const (
	threadMsgsPrefix  = "thread:msgs:"
	threadOwnerPrefix = "thread:owner:"
	threadIndexPrefix = "thread:index:"
)

type redisThreadRepository struct {
	client *redis.Client
}

// NewRedisThreadRepository creates a thread store backed by Redis
func NewRedisThreadRepository(client *redis.Client) domainrepos.ThreadRepository {
	return &redisThreadRepository{client: client}
}

func (r *redisThreadRepository) EnsureThread(ctx context.Context, linkID, threadID string, ownerID int64) error {
	pipe := r.client.TxPipeline()
	pipe.SetNX(ctx, threadOwnerPrefix+threadKey(linkID, threadID), ownerID, 0)
	pipe.SAdd(ctx, threadIndexPrefix+linkID, threadID)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisThreadRepository) AppendMessage(ctx context.Context, linkID, threadID string, ownerID int64, from entities.MessageFrom, text string) error {
	msg := entities.Message{
		From: from,
		Text: entities.TruncateMessage(text),
		Ts:   entities.NowMillis(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.SetNX(ctx, threadOwnerPrefix+threadKey(linkID, threadID), ownerID, 0)
	pipe.SAdd(ctx, threadIndexPrefix+linkID, threadID)
	pipe.RPush(ctx, threadMsgsPrefix+threadKey(linkID, threadID), data)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisThreadRepository) GetMessages(ctx context.Context, linkID, threadID string) ([]entities.Message, error) {
	raw, err := r.client.LRange(ctx, threadMsgsPrefix+threadKey(linkID, threadID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]entities.Message, 0, len(raw))
	for _, item := range raw {
		var msg entities.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}

func (r *redisThreadRepository) GetThread(ctx context.Context, linkID, threadID string) (*entities.Thread, error) {
	ownerRaw, err := r.client.Get(ctx, threadOwnerPrefix+threadKey(linkID, threadID)).Result()
	if err == redis.Nil {
		return nil, domainerrors.ErrThreadNotFound
	}
	if err != nil {
		return nil, err
	}

	ownerID, err := strconv.ParseInt(ownerRaw, 10, 64)
	if err != nil {
		return nil, err
	}

	messages, err := r.GetMessages(ctx, linkID, threadID)
	if err != nil {
		return nil, err
	}

	return &entities.Thread{LinkID: linkID, OwnerID: ownerID, Messages: messages}, nil
}

func (r *redisThreadRepository) ListThreadsForLink(ctx context.Context, linkID string) ([]entities.ThreadSummary, error) {
	threadIDs, err := r.client.SMembers(ctx, threadIndexPrefix+linkID).Result()
	if err != nil {
		return nil, err
	}

	out := make([]entities.ThreadSummary, 0, len(threadIDs))
	for _, threadID := range threadIDs {
		messages, err := r.GetMessages(ctx, linkID, threadID)
		if err != nil {
			return nil, err
		}
		summary := entities.ThreadSummary{
			ThreadID:     threadID,
			MessageCount: len(messages),
		}
		if n := len(messages); n > 0 {
			summary.LastMessageTs = messages[n-1].Ts
		}
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTs > out[j].LastMessageTs
	})
	return out, nil
}
