package repositories

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	domainrepos "github.com/fuckinutkin/greenland/internal/domain/repositories"
)

// Redis key layout:
//
//	link:<id>          hash {data: <json without opens>, opens: <counter>}
//	links:owner:<uid>  list of link IDs, most recent first
const (
	linkKeyPrefix  = "link:"
	ownerKeyPrefix = "links:owner:"

	linkDataField  = "data"
	linkOpensField = "opens"
)

type redisLinkRepository struct {
	client *redis.Client
}

// NewRedisLinkRepository creates a link store backed by Redis. The open
// counter lives in its own hash field so HIncrBy keeps increments atomic
// across processes.
func NewRedisLinkRepository(client *redis.Client) domainrepos.LinkRepository {
	return &redisLinkRepository{client: client}
}

func linkKey(id string) string {
	return linkKeyPrefix + id
}

func ownerKey(ownerID int64) string {
	return ownerKeyPrefix + strconv.FormatInt(ownerID, 10)
}

func (r *redisLinkRepository) Create(ctx context.Context, link *entities.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}

	ok, err := r.client.HSetNX(ctx, linkKey(link.ID), linkDataField, data).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrAlreadyExists
	}

	pipe := r.client.TxPipeline()
	pipe.HSetNX(ctx, linkKey(link.ID), linkOpensField, link.Opens)
	pipe.LPush(ctx, ownerKey(link.OwnerID), link.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisLinkRepository) GetByID(ctx context.Context, id string) (*entities.Link, error) {
	vals, err := r.client.HMGet(ctx, linkKey(id), linkDataField, linkOpensField).Result()
	if err != nil {
		return nil, err
	}
	return decodeLink(vals)
}

func (r *redisLinkRepository) IncrementOpens(ctx context.Context, id string) (*entities.Link, error) {
	// Existence check first: HIncrBy would silently create the key.
	exists, err := r.client.Exists(ctx, linkKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, domainerrors.ErrLinkNotFound
	}

	opens, err := r.client.HIncrBy(ctx, linkKey(id), linkOpensField, 1).Result()
	if err != nil {
		return nil, err
	}

	raw, err := r.client.HGet(ctx, linkKey(id), linkDataField).Result()
	if err != nil {
		return nil, err
	}

	var link entities.Link
	if err := json.Unmarshal([]byte(raw), &link); err != nil {
		return nil, err
	}
	link.Opens = opens
	return &link, nil
}

func (r *redisLinkRepository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*entities.Link, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := r.client.LRange(ctx, ownerKey(ownerID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Link, 0, len(ids))
	for _, id := range ids {
		link, err := r.GetByID(ctx, id)
		if err != nil {
			if err == domainerrors.ErrLinkNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, link)
	}
	return out, nil
}

func decodeLink(vals []interface{}) (*entities.Link, error) {
	if len(vals) != 2 || vals[0] == nil {
		return nil, domainerrors.ErrLinkNotFound
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, domainerrors.ErrLinkNotFound
	}

	var link entities.Link
	if err := json.Unmarshal([]byte(raw), &link); err != nil {
		return nil, err
	}

	if opensRaw, ok := vals[1].(string); ok {
		opens, err := strconv.ParseInt(opensRaw, 10, 64)
		if err != nil {
			return nil, err
		}
		link.Opens = opens
	}
	return &link, nil
}
