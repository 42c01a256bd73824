package repositories

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
)

func TestThreadRepository_AppendAndGetRoundTrip(t *testing.T) {
	for name, factory := range threadRepoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			require.NoError(t, repo.AppendMessage(ctx, "123456", "main", 42, entities.MessageFromVisitor, "hello"))
			require.NoError(t, repo.AppendMessage(ctx, "123456", "main", 42, entities.MessageFromOwner, "hi there"))
			require.NoError(t, repo.AppendMessage(ctx, "123456", "main", 42, entities.MessageFromVisitor, "thanks"))

			msgs, err := repo.GetMessages(ctx, "123456", "main")
			require.NoError(t, err)
			require.Len(t, msgs, 3)

			assert.Equal(t, entities.MessageFromVisitor, msgs[0].From)
			assert.Equal(t, "hello", msgs[0].Text)
			assert.Equal(t, entities.MessageFromOwner, msgs[1].From)
			assert.Equal(t, "hi there", msgs[1].Text)
			assert.Equal(t, "thanks", msgs[2].Text)

			// timestamps assigned server-side, non-decreasing
			assert.Positive(t, msgs[0].Ts)
			assert.LessOrEqual(t, msgs[0].Ts, msgs[1].Ts)
			assert.LessOrEqual(t, msgs[1].Ts, msgs[2].Ts)
		})
	}
}

func TestThreadRepository_TruncatesLongText(t *testing.T) {
	for name, factory := range threadRepoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			long := strings.Repeat("x", entities.MaxMessageLength+50)
			require.NoError(t, repo.AppendMessage(ctx, "123456", "main", 1, entities.MessageFromVisitor, long))

			msgs, err := repo.GetMessages(ctx, "123456", "main")
			require.NoError(t, err)
			require.Len(t, msgs, 1)
			assert.Len(t, msgs[0].Text, entities.MaxMessageLength)
		})
	}
}

func TestThreadRepository_PollBeforeFirstMessage(t *testing.T) {
	for name, factory := range threadRepoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)

			msgs, err := repo.GetMessages(context.Background(), "123456", "nothere")
			require.NoError(t, err)
			assert.NotNil(t, msgs)
			assert.Empty(t, msgs)
		})
	}
}

func TestThreadRepository_GetThread(t *testing.T) {
	for name, factory := range threadRepoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			_, err := repo.GetThread(ctx, "123456", "main")
			assert.ErrorIs(t, err, domainerrors.ErrThreadNotFound)

			require.NoError(t, repo.AppendMessage(ctx, "123456", "main", 42, entities.MessageFromVisitor, "hello"))

			thread, err := repo.GetThread(ctx, "123456", "main")
			require.NoError(t, err)
			assert.Equal(t, "123456", thread.LinkID)
			assert.Equal(t, int64(42), thread.OwnerID)
			require.Len(t, thread.Messages, 1)
		})
	}
}

func TestThreadRepository_EnsureThread(t *testing.T) {
	for name, factory := range threadRepoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			require.NoError(t, repo.EnsureThread(ctx, "123456", entities.CanonicalThreadID, 42))
			require.NoError(t, repo.EnsureThread(ctx, "123456", entities.CanonicalThreadID, 42))

			thread, err := repo.GetThread(ctx, "123456", entities.CanonicalThreadID)
			require.NoError(t, err)
			assert.Equal(t, int64(42), thread.OwnerID)
			assert.Empty(t, thread.Messages)

			msgs, err := repo.GetMessages(ctx, "123456", entities.CanonicalThreadID)
			require.NoError(t, err)
			assert.Empty(t, msgs)

			summaries, err := repo.ListThreadsForLink(ctx, "123456")
			require.NoError(t, err)
			require.Len(t, summaries, 1)
			assert.Equal(t, 0, summaries[0].MessageCount)
		})
	}
}

func TestThreadRepository_ListThreadsForLink(t *testing.T) {
	for name, factory := range threadRepoFactories() {
		t.Run(name, func(t *testing.T) {
			repo := factory(t)
			ctx := context.Background()

			require.NoError(t, repo.AppendMessage(ctx, "123456", "aaa", 1, entities.MessageFromVisitor, "first"))
			require.NoError(t, repo.AppendMessage(ctx, "123456", "bbb", 1, entities.MessageFromVisitor, "second"))
			require.NoError(t, repo.AppendMessage(ctx, "123456", "bbb", 1, entities.MessageFromVisitor, "third"))
			require.NoError(t, repo.AppendMessage(ctx, "654321", "ccc", 2, entities.MessageFromVisitor, "other link"))

			summaries, err := repo.ListThreadsForLink(ctx, "123456")
			require.NoError(t, err)
			require.Len(t, summaries, 2)

			byID := map[string]entities.ThreadSummary{}
			for _, s := range summaries {
				byID[s.ThreadID] = s
			}
			assert.Equal(t, 1, byID["aaa"].MessageCount)
			assert.Equal(t, 2, byID["bbb"].MessageCount)

			// sorted by last message timestamp descending
			assert.GreaterOrEqual(t, summaries[0].LastMessageTs, summaries[1].LastMessageTs)
		})
	}
}
