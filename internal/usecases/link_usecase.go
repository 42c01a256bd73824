package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	domainRepos "github.com/fuckinutkin/greenland/internal/domain/repositories"
	"github.com/fuckinutkin/greenland/pkg/logger"
	"github.com/fuckinutkin/greenland/pkg/metrics"
	"github.com/fuckinutkin/greenland/pkg/utils"
)

// maxIDAttempts bounds regeneration on ID collision. Collisions are
// astronomically unlikely in a 6-digit space at this scale but must not be
// assumed impossible.
const maxIDAttempts = 5

type LinkUsecase struct {
	linkRepo   domainRepos.LinkRepository
	threadRepo domainRepos.ThreadRepository
	notifier   Notifier
	baseURL    string
	generateID func() string
}

func NewLinkUsecase(
	linkRepo domainRepos.LinkRepository,
	threadRepo domainRepos.ThreadRepository,
	notifier Notifier,
	baseURL string,
) *LinkUsecase {
	return &LinkUsecase{
		linkRepo:   linkRepo,
		threadRepo: threadRepo,
		notifier:   notifier,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		generateID: utils.GenerateLinkID,
	}
}

type CreateLinkInput struct {
	OwnerID    int64
	OwnerLabel string // "@username | id:123" for the audit log
	Amount     string
	Network    string
	Duration   null.Int64 // countdown seconds, null means no timer
	Currency   string
}

type CreateLinkOutput struct {
	Link *entities.Link `json:"link"`
	URL  string         `json:"url"`
}

// CreateLink validates wizard output, allocates a fresh ID, pre-creates the
// canonical support thread and reports the creation to the audit channel.
func (uc *LinkUsecase) CreateLink(ctx context.Context, input CreateLinkInput) (*CreateLinkOutput, error) {
	if !entities.ValidAmount(input.Amount) {
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidInput, "amount must be a positive number")
	}
	if input.Network != "" && !entities.ValidNetwork(input.Network) {
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidInput, "unsupported network")
	}
	if input.Currency != "" && !entities.ValidCurrency(input.Currency) {
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidInput, "unsupported currency")
	}
	if input.Duration.Valid && !entities.ValidDuration(input.Duration.Int64) {
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidInput, "unsupported duration")
	}
	// timer and currency are alternative expiry display modes
	if input.Duration.Valid && input.Currency != "" {
		return nil, domainerrors.BadRequest(domainerrors.CodeInvalidInput, "duration and currency are mutually exclusive")
	}

	link := &entities.Link{
		OwnerID:         input.OwnerID,
		Amount:          input.Amount,
		Network:         null.NewString(input.Network, input.Network != ""),
		Currency:        null.NewString(input.Currency, input.Currency != ""),
		DurationSeconds: input.Duration,
		CreatedAt:       entities.NowMillis(),
	}

	var created bool
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		link.ID = uc.generateID()
		err := uc.linkRepo.Create(ctx, link)
		if err == nil {
			created = true
			break
		}
		if !errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, err
		}
	}
	if !created {
		return nil, domainerrors.InternalError(errors.New("could not allocate a unique link id"))
	}

	if err := uc.threadRepo.EnsureThread(ctx, link.ID, entities.CanonicalThreadID, link.OwnerID); err != nil {
		logger.Warn(ctx, "canonical thread pre-create failed",
			zap.String("link_id", link.ID), zap.Error(err))
	}

	shareURL := uc.ShareURL(link.ID)
	metrics.LinksCreated.Inc()

	uc.notify(ctx, "audit_create", func() error {
		return uc.notifier.Audit(ctx, AuditCreate, formatCreateAudit(link, input.OwnerLabel, shareURL))
	})

	return &CreateLinkOutput{Link: link, URL: shareURL}, nil
}

func (uc *LinkUsecase) GetLink(ctx context.Context, id string) (*entities.Link, error) {
	return uc.linkRepo.GetByID(ctx, id)
}

// RecordOpen bumps the open counter and pushes the open notifications. Both
// sends are best-effort: a Telegram failure never reaches the visitor.
func (uc *LinkUsecase) RecordOpen(ctx context.Context, id string) (*entities.Link, error) {
	link, err := uc.linkRepo.IncrementOpens(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.LinkOpens.Inc()

	uc.notify(ctx, "audit_open", func() error {
		return uc.notifier.Audit(ctx, AuditOpen, formatOpenAudit(link))
	})
	uc.notify(ctx, "owner_open_dm", func() error {
		return uc.notifier.NotifyOwner(ctx, link.OwnerID, formatOpenDM(link))
	})

	return link, nil
}

func (uc *LinkUsecase) ListLinks(ctx context.Context, ownerID int64, limit int) ([]*entities.Link, error) {
	return uc.linkRepo.ListByOwner(ctx, ownerID, limit)
}

// ShareURL builds the public check-page URL for a link ID
func (uc *LinkUsecase) ShareURL(id string) string {
	u, err := url.Parse(uc.baseURL + "/check")
	if err != nil {
		return uc.baseURL + "/check?id=" + id
	}
	q := u.Query()
	q.Set("id", id)
	u.RawQuery = q.Encode()
	return u.String()
}

func (uc *LinkUsecase) notify(ctx context.Context, kind string, send func() error) {
	if err := send(); err != nil {
		metrics.NotifyFailures.WithLabelValues(kind).Inc()
		logger.Warn(ctx, "notification send failed", zap.String("kind", kind), zap.Error(err))
	}
}

func formatCreateAudit(link *entities.Link, ownerLabel, shareURL string) string {
	var b strings.Builder
	b.WriteString("🆕 CREATED\n")
	fmt.Fprintf(&b, "User: %s\n", ownerLabel)
	fmt.Fprintf(&b, "Link ID: %s\n", link.ID)
	fmt.Fprintf(&b, "Amount: %s\n", link.Amount)
	if link.Network.Valid {
		fmt.Fprintf(&b, "Network: %s\n", strings.ToUpper(link.Network.String))
	}
	if link.DurationSeconds.Valid {
		fmt.Fprintf(&b, "Timer: %s\n", FormatDuration(link.DurationSeconds.Int64))
	}
	if link.Currency.Valid {
		fmt.Fprintf(&b, "Currency: %s\n", strings.ToUpper(link.Currency.String))
	}
	fmt.Fprintf(&b, "Link: %s", shareURL)
	return b.String()
}

func formatOpenAudit(link *entities.Link) string {
	return fmt.Sprintf("👀 OPENED\nLink ID: %s\nOwner: %d\nAmount: %s\nOpens: %d",
		link.ID, link.OwnerID, link.Amount, link.Opens)
}

func formatOpenDM(link *entities.Link) string {
	return fmt.Sprintf("👀 Someone opened your link!\nLink ID: %s\nAmount: %s\nTotal opens: %d",
		link.ID, link.Amount, link.Opens)
}

// FormatDuration renders a countdown as the wizard shows it: 900 -> "15:00"
func FormatDuration(seconds int64) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
