package telegram

import (
	tele "gopkg.in/telebot.v4"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	"github.com/fuckinutkin/greenland/internal/usecases"
)

// Callback uniques. Payloads carry the picked value.
const (
	cbCreateLink = "create_link"
	cbMyLinks    = "my_links"
	cbNetwork    = "pick_network"
	cbDuration   = "pick_duration"
	cbNoTimer    = "pick_no_timer"
	cbCurrency   = "pick_currency"
	cbCancel     = "wizard_cancel"
)

func btn(unique string) *tele.Btn {
	return &tele.Btn{Unique: unique}
}

func mainMenu(communityURL, channelURL string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{
		markup.Row(
			markup.Data("✅ Create link", cbCreateLink),
			markup.Data("👤 My links", cbMyLinks),
		),
	}
	if communityURL != "" {
		rows = append(rows, markup.Row(markup.URL("💬 Community chat", communityURL)))
	}
	if channelURL != "" {
		rows = append(rows, markup.Row(markup.URL("📣 Greenland channel", channelURL)))
	}
	markup.Inline(rows...)
	return markup
}

func networkKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("TRC20", cbNetwork, string(entities.NetworkTRC20)),
			markup.Data("ERC20", cbNetwork, string(entities.NetworkERC20)),
		),
		markup.Row(
			markup.Data("SOL", cbNetwork, string(entities.NetworkSOL)),
			markup.Data("BEP20", cbNetwork, string(entities.NetworkBEP20)),
		),
		markup.Row(markup.Data("❌ Cancel", cbCancel)),
	)
	return markup
}

func durationKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data(usecases.FormatDuration(entities.DurationShort), cbDuration, "900"),
			markup.Data(usecases.FormatDuration(entities.DurationMedium), cbDuration, "1800"),
			markup.Data(usecases.FormatDuration(entities.DurationLong), cbDuration, "3600"),
		),
		markup.Row(markup.Data("♾ No timer", cbNoTimer)),
		markup.Row(markup.Data("❌ Cancel", cbCancel)),
	)
	return markup
}

func currencyKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("USDT", cbCurrency, string(entities.CurrencyUSDT)),
			markup.Data("USDC", cbCurrency, string(entities.CurrencyUSDC)),
		),
		markup.Row(markup.Data("❌ Cancel", cbCancel)),
	)
	return markup
}

func cancelKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("❌ Cancel", cbCancel)))
	return markup
}
