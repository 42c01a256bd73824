package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// LinkIDLength is the number of digits in a generated link ID.
const LinkIDLength = 6

var linkIDSpace = big.NewInt(900000)

// GenerateLinkID generates a short numeric link identifier (6 random digits,
// first digit never zero so the ID survives numeric round-trips).
func GenerateLinkID() string {
	n, err := rand.Int(rand.Reader, linkIDSpace)
	if err != nil {
		// crypto/rand is expected to never fail; fall back to a UUID-derived digit string
		return uuidDigits(LinkIDLength)
	}
	return strconv.FormatInt(n.Int64()+100000, 10)
}

// GenerateThreadToken generates a random token matching the shape the browser
// widget stores in localStorage (short lowercase alphanumeric).
func GenerateThreadToken() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:10]
}

func uuidDigits(n int) string {
	var b strings.Builder
	for _, c := range uuid.New().String() {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
			if b.Len() == n {
				break
			}
		}
	}
	for b.Len() < n {
		b.WriteByte('9')
	}
	return b.String()
}
