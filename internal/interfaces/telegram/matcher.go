package telegram

import (
	"regexp"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
)

// Forwarded support messages carry a parsable header (see SupportUsecase).
// The matcher reads it back out of the quoted text when the owner replies.
var (
	linkIDPattern = regexp.MustCompile(`(?i)Link ID:\s*([a-z0-9]+)`)
	threadPattern = regexp.MustCompile(`(?i)Thread:\s*([a-z0-9]+)`)
	// share URLs also identify a link, so replying to one's own link message works
	urlIDPattern = regexp.MustCompile(`[?&]id=([a-z0-9]+)`)
)

// ReplyRoute is the destination extracted from a quoted message
type ReplyRoute struct {
	LinkID   string
	ThreadID string
}

// MatchReplyRoute extracts a link/thread destination from the text of a quoted
// message. The thread defaults to the canonical one when the header carries no
// Thread label. Returns false when no link identifier is present at all.
func MatchReplyRoute(quoted string) (ReplyRoute, bool) {
	route := ReplyRoute{ThreadID: entities.CanonicalThreadID}

	if m := linkIDPattern.FindStringSubmatch(quoted); m != nil {
		route.LinkID = m[1]
	} else if m := urlIDPattern.FindStringSubmatch(quoted); m != nil {
		route.LinkID = m[1]
	} else {
		return ReplyRoute{}, false
	}

	if m := threadPattern.FindStringSubmatch(quoted); m != nil {
		route.ThreadID = m[1]
	}
	return route, true
}
