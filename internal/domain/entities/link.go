package entities

import (
	"regexp"
	"time"

	"github.com/volatiletech/null/v8"
)

// Network represents the settlement network advertised on a payment link
type Network string

const (
	NetworkTRC20 Network = "trc20"
	NetworkERC20 Network = "erc20"
	NetworkSOL   Network = "sol"
	NetworkBEP20 Network = "bep20"
)

// Currency represents the display currency of a payment link without a timer
type Currency string

const (
	CurrencyUSDT Currency = "usdt"
	CurrencyUSDC Currency = "usdc"
	CurrencySOL  Currency = "sol"
)

// Allowed countdown durations in seconds
const (
	DurationShort  int64 = 900
	DurationMedium int64 = 1800
	DurationLong   int64 = 3600
)

// Link represents a shareable payment link created through the bot wizard
type Link struct {
	ID              string      `json:"id"`
	OwnerID         int64       `json:"ownerId"`
	Amount          string      `json:"amount"`
	Network         null.String `json:"network"`
	Currency        null.String `json:"currency"`
	DurationSeconds null.Int64  `json:"durationSeconds"`
	CreatedAt       int64       `json:"createdAt"` // unix milliseconds
	Opens           int64       `json:"opens"`
}

// ExpiresAt returns the countdown deadline in unix milliseconds, or null for
// links without a timer.
func (l *Link) ExpiresAt() null.Int64 {
	if !l.DurationSeconds.Valid {
		return null.Int64{}
	}
	return null.Int64From(l.CreatedAt + l.DurationSeconds.Int64*1000)
}

var amountPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ValidAmount reports whether s is a strictly positive decimal string.
// The value is stored verbatim, so validation never parses to float.
func ValidAmount(s string) bool {
	if !amountPattern.MatchString(s) {
		return false
	}
	for _, c := range s {
		if c >= '1' && c <= '9' {
			return true
		}
	}
	return false
}

// ValidNetwork reports whether s is one of the supported networks
func ValidNetwork(s string) bool {
	switch Network(s) {
	case NetworkTRC20, NetworkERC20, NetworkSOL, NetworkBEP20:
		return true
	}
	return false
}

// ValidCurrency reports whether s is one of the supported currencies
func ValidCurrency(s string) bool {
	switch Currency(s) {
	case CurrencyUSDT, CurrencyUSDC, CurrencySOL:
		return true
	}
	return false
}

// ValidDuration reports whether sec is one of the supported countdown values
func ValidDuration(sec int64) bool {
	return sec == DurationShort || sec == DurationMedium || sec == DurationLong
}

// NowMillis returns the current time in unix milliseconds
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
