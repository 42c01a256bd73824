package repositories

import (
	"context"
	"sync"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	domainrepos "github.com/fuckinutkin/greenland/internal/domain/repositories"
)

type memoryLinkRepository struct {
	mu      sync.RWMutex
	links   map[string]*entities.Link
	byOwner map[int64][]string // most-recent-first
}

// NewMemoryLinkRepository creates the in-process link store
func NewMemoryLinkRepository() domainrepos.LinkRepository {
	return &memoryLinkRepository{
		links:   make(map[string]*entities.Link),
		byOwner: make(map[int64][]string),
	}
}

func (r *memoryLinkRepository) Create(ctx context.Context, link *entities.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.links[link.ID]; exists {
		return domainerrors.ErrAlreadyExists
	}

	stored := *link
	r.links[link.ID] = &stored
	r.byOwner[link.OwnerID] = append([]string{link.ID}, r.byOwner[link.OwnerID]...)
	return nil
}

func (r *memoryLinkRepository) GetByID(ctx context.Context, id string) (*entities.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[id]
	if !ok {
		return nil, domainerrors.ErrLinkNotFound
	}
	out := *link
	return &out, nil
}

func (r *memoryLinkRepository) IncrementOpens(ctx context.Context, id string) (*entities.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[id]
	if !ok {
		return nil, domainerrors.ErrLinkNotFound
	}
	link.Opens++
	out := *link
	return &out, nil
}

func (r *memoryLinkRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*entities.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOwner[ownerID]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]*entities.Link, 0, len(ids))
	for _, id := range ids {
		if link, ok := r.links[id]; ok {
			cp := *link
			out = append(out, &cp)
		}
	}
	return out, nil
}
