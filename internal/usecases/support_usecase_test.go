package usecases

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
)

func TestVisitorSendForwardsWithHeader(t *testing.T) {
	links, support, notifier := newTestLinkUsecase(t)
	ctx := context.Background()

	out, err := links.CreateLink(ctx, CreateLinkInput{OwnerID: 42, Amount: "5"})
	require.NoError(t, err)

	err = support.VisitorSend(ctx, out.Link.ID, "main", "hello, is this safe?")
	require.NoError(t, err)

	owner := notifier.ownerMessages()
	require.Len(t, owner, 1)
	assert.Equal(t, int64(42), owner[0].ownerID)
	want := fmt.Sprintf("🆘 SUPPORT\nLink ID: %s\nThread: main\n---\nhello, is this safe?", out.Link.ID)
	assert.Equal(t, want, owner[0].text)

	msgs, err := support.Poll(ctx, out.Link.ID, "main")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, entities.MessageFromVisitor, msgs[0].From)
	assert.Equal(t, "hello, is this safe?", msgs[0].Text)
}

func TestVisitorSendTruncatesLongMessages(t *testing.T) {
	links, support, _ := newTestLinkUsecase(t)
	ctx := context.Background()

	out, err := links.CreateLink(ctx, CreateLinkInput{OwnerID: 1, Amount: "5"})
	require.NoError(t, err)

	long := strings.Repeat("x", entities.MaxMessageLength+200)
	require.NoError(t, support.VisitorSend(ctx, out.Link.ID, "main", long))

	msgs, err := support.Poll(ctx, out.Link.ID, "main")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Len(t, msgs[0].Text, entities.MaxMessageLength)
}

func TestVisitorSendUnknownLink(t *testing.T) {
	_, support, notifier := newTestLinkUsecase(t)

	err := support.VisitorSend(context.Background(), "000000", "main", "hi")
	assert.ErrorIs(t, err, domainerrors.ErrLinkNotFound)
	assert.Empty(t, notifier.ownerMessages())
}

func TestVisitorSendSurvivesForwardOutage(t *testing.T) {
	links, support, notifier := newTestLinkUsecase(t)
	ctx := context.Background()

	out, err := links.CreateLink(ctx, CreateLinkInput{OwnerID: 1, Amount: "5"})
	require.NoError(t, err)

	notifier.mu.Lock()
	notifier.fail = true
	notifier.mu.Unlock()

	// the message is stored even when Telegram is down
	require.NoError(t, support.VisitorSend(ctx, out.Link.ID, "main", "still here?"))

	msgs, err := support.Poll(ctx, out.Link.ID, "main")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestOwnerReplyGate(t *testing.T) {
	links, support, _ := newTestLinkUsecase(t)
	ctx := context.Background()

	out, err := links.CreateLink(ctx, CreateLinkInput{OwnerID: 42, Amount: "5"})
	require.NoError(t, err)

	err = support.OwnerReply(ctx, 43, out.Link.ID, "main", "I am not the owner")
	assert.ErrorIs(t, err, domainerrors.ErrNotOwner)

	msgs, err := support.Poll(ctx, out.Link.ID, "main")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestOwnerReplyDefaultsToCanonicalThread(t *testing.T) {
	links, support, _ := newTestLinkUsecase(t)
	ctx := context.Background()

	out, err := links.CreateLink(ctx, CreateLinkInput{OwnerID: 42, Amount: "5"})
	require.NoError(t, err)

	require.NoError(t, support.OwnerReply(ctx, 42, out.Link.ID, "", "yes, pay here"))

	msgs, err := support.Poll(ctx, out.Link.ID, entities.CanonicalThreadID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, entities.MessageFromOwner, msgs[0].From)
}

func TestConversationOrder(t *testing.T) {
	links, support, _ := newTestLinkUsecase(t)
	ctx := context.Background()

	out, err := links.CreateLink(ctx, CreateLinkInput{OwnerID: 42, Amount: "5"})
	require.NoError(t, err)
	id := out.Link.ID

	require.NoError(t, support.VisitorSend(ctx, id, "main", "first"))
	require.NoError(t, support.OwnerReply(ctx, 42, id, "main", "second"))
	require.NoError(t, support.VisitorSend(ctx, id, "main", "third"))

	msgs, err := support.Poll(ctx, id, "main")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)
	assert.Equal(t, "third", msgs[2].Text)
	assert.LessOrEqual(t, msgs[0].Ts, msgs[1].Ts)
	assert.LessOrEqual(t, msgs[1].Ts, msgs[2].Ts)
}

func TestPollEmptyThreadIsNotAnError(t *testing.T) {
	_, support, _ := newTestLinkUsecase(t)

	msgs, err := support.Poll(context.Background(), "000000", "nope")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestListThreadsOwnerGated(t *testing.T) {
	links, support, _ := newTestLinkUsecase(t)
	ctx := context.Background()

	out, err := links.CreateLink(ctx, CreateLinkInput{OwnerID: 42, Amount: "5"})
	require.NoError(t, err)
	id := out.Link.ID

	require.NoError(t, support.VisitorSend(ctx, id, "main", "hello"))
	require.NoError(t, support.VisitorSend(ctx, id, "a1b2c3d4e5", "hi from another tab"))

	_, err = support.ListThreads(ctx, 43, id)
	assert.ErrorIs(t, err, domainerrors.ErrNotOwner)

	threads, err := support.ListThreads(ctx, 42, id)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	byID := make(map[string]entities.ThreadSummary, len(threads))
	for _, th := range threads {
		byID[th.ThreadID] = th
	}
	assert.Equal(t, 1, byID[entities.CanonicalThreadID].MessageCount)
	assert.Equal(t, 1, byID["a1b2c3d4e5"].MessageCount)
	assert.GreaterOrEqual(t, threads[0].LastMessageTs, threads[1].LastMessageTs)
}

func TestThreadExists(t *testing.T) {
	links, support, _ := newTestLinkUsecase(t)
	ctx := context.Background()

	out, err := links.CreateLink(ctx, CreateLinkInput{OwnerID: 1, Amount: "5"})
	require.NoError(t, err)

	ok, err := support.ThreadExists(ctx, out.Link.ID, entities.CanonicalThreadID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = support.ThreadExists(ctx, out.Link.ID, "deadbeef00")
	require.NoError(t, err)
	assert.False(t, ok)
}
