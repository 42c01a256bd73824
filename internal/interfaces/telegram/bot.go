package telegram

import (
	"context"
	"runtime/debug"
	"time"

	tele "gopkg.in/telebot.v4"
	"go.uber.org/zap"

	"github.com/fuckinutkin/greenland/internal/usecases"
	"github.com/fuckinutkin/greenland/pkg/logger"
)

// Options carries everything the bot surface needs from the outside
type Options struct {
	Token        string
	CommunityURL string
	ChannelURL   string

	Links   *usecases.LinkUsecase
	Support *usecases.SupportUsecase
	Wizard  *usecases.WizardUsecase

	// Poller overrides the default long poller, used by tests
	Poller tele.Poller
}

// Bot is the Telegram surface: wizard dialogue, link listing and reply routing
type Bot struct {
	bot  *tele.Bot
	opts Options
	menu *tele.ReplyMarkup
}

// New connects the bot. Handlers are registered once the usecases are in
// place: either here, when Options already carries them, or via Wire. The
// two-phase path exists because the usecases need this bot's Notifier first.
func New(opts Options) (*Bot, error) {
	poller := opts.Poller
	if poller == nil {
		poller = &tele.LongPoller{Timeout: 10 * time.Second}
	}

	tb, err := tele.NewBot(tele.Settings{
		Token:  opts.Token,
		Poller: poller,
	})
	if err != nil {
		return nil, err
	}

	b := &Bot{
		bot:  tb,
		opts: opts,
		menu: mainMenu(opts.CommunityURL, opts.ChannelURL),
	}
	if opts.Wizard != nil {
		b.registerHandlers()
	}
	return b, nil
}

// Wire attaches the usecases and registers all handlers
func (b *Bot) Wire(links *usecases.LinkUsecase, support *usecases.SupportUsecase, wizard *usecases.WizardUsecase) {
	b.opts.Links = links
	b.opts.Support = support
	b.opts.Wizard = wizard
	b.registerHandlers()
}

func (b *Bot) registerHandlers() {
	b.bot.Use(recoverMiddleware, loggingMiddleware)

	b.bot.Handle("/start", b.onStart)
	b.bot.Handle("/cancel", b.onCancel)
	b.bot.Handle("/mylinks", b.onMyLinks)
	b.bot.Handle("/threads", b.onThreads)
	b.bot.Handle("/reply", b.onReplyCommand)

	b.bot.Handle(btn(cbCreateLink), b.onCreateLink)
	b.bot.Handle(btn(cbMyLinks), b.onMyLinks)
	b.bot.Handle(btn(cbNetwork), b.onPickNetwork)
	b.bot.Handle(btn(cbDuration), b.onPickDuration)
	b.bot.Handle(btn(cbNoTimer), b.onPickNoTimer)
	b.bot.Handle(btn(cbCurrency), b.onPickCurrency)
	b.bot.Handle(btn(cbCancel), b.onCancel)

	b.bot.Handle(tele.OnText, b.onText)
}

// Start runs long polling until ctx is cancelled
func (b *Bot) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()

	logger.Info(ctx, "telegram bot started", zap.String("bot", b.bot.Me.Username))
	b.bot.Start()
}

// Notifier returns the outbound notifier bound to this bot's send loop
func (b *Bot) Notifier(createLogChatID, openLogChatID int64) *Notifier {
	return NewNotifier(b.bot, createLogChatID, openLogChatID)
}

func recoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(context.Background(), "panic in bot handler",
					zap.Any("panic", r),
					zap.String("stack", string(debug.Stack())))
			}
		}()
		return next(c)
	}
}

func loggingMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		err := next(c)

		fields := []zap.Field{
			zap.Duration("took", time.Since(start)),
		}
		if s := c.Sender(); s != nil {
			fields = append(fields, zap.Int64("user_id", s.ID))
		}
		if cb := c.Callback(); cb != nil {
			fields = append(fields, zap.String("callback", cb.Unique))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
			logger.Warn(context.Background(), "bot update failed", fields...)
			return err
		}
		logger.Debug(context.Background(), "bot update handled", fields...)
		return nil
	}
}
