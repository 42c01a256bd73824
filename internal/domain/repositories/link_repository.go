package repositories

import (
	"context"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
)

// LinkRepository interface
type LinkRepository interface {
	// Create inserts a new link. Returns ErrAlreadyExists when the ID is taken
	// so callers can regenerate and retry.
	Create(ctx context.Context, link *entities.Link) error
	GetByID(ctx context.Context, id string) (*entities.Link, error)
	// IncrementOpens atomically bumps the open counter and returns the updated
	// record.
	IncrementOpens(ctx context.Context, id string) (*entities.Link, error)
	// ListByOwner returns the owner's links most-recent-first, capped at limit.
	ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*entities.Link, error)
}
