package entities

// CanonicalThreadID is the implicit thread used when a link has exactly one
// support conversation. Visitor-chosen tokens are still accepted as keys.
const CanonicalThreadID = "main"

// MaxMessageLength is the per-message text cap, in runes
const MaxMessageLength = 500

// MessageFrom identifies which side of the support chat sent a message
type MessageFrom string

const (
	MessageFromVisitor MessageFrom = "visitor"
	MessageFromOwner   MessageFrom = "owner"
)

// Message is a single entry in a support thread's append-only log
type Message struct {
	From MessageFrom `json:"from"`
	Text string      `json:"text"`
	Ts   int64       `json:"ts"` // unix milliseconds, assigned at append time
}

// Thread is a support conversation between a link's visitor and its owner
type Thread struct {
	LinkID   string    `json:"linkId"`
	OwnerID  int64     `json:"ownerId"`
	Messages []Message `json:"messages"`
}

// ThreadSummary is the owner-facing digest of one thread
type ThreadSummary struct {
	ThreadID      string `json:"threadId"`
	MessageCount  int    `json:"messageCount"`
	LastMessageTs int64  `json:"lastMessageTs"`
}

// TruncateMessage caps text at MaxMessageLength runes without splitting a
// multi-byte character.
func TruncateMessage(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxMessageLength {
		return text
	}
	return string(runes[:MaxMessageLength])
}
