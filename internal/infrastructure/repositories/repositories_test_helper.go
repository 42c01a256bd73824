package repositories

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	domainrepos "github.com/fuckinutkin/greenland/internal/domain/repositories"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Both backends must satisfy the same contract, so every test runs against
// both factories.
func linkRepoFactories() map[string]func(t *testing.T) domainrepos.LinkRepository {
	return map[string]func(t *testing.T) domainrepos.LinkRepository{
		"memory": func(t *testing.T) domainrepos.LinkRepository {
			return NewMemoryLinkRepository()
		},
		"redis": func(t *testing.T) domainrepos.LinkRepository {
			return NewRedisLinkRepository(newTestRedis(t))
		},
	}
}

func threadRepoFactories() map[string]func(t *testing.T) domainrepos.ThreadRepository {
	return map[string]func(t *testing.T) domainrepos.ThreadRepository{
		"memory": func(t *testing.T) domainrepos.ThreadRepository {
			return NewMemoryThreadRepository()
		},
		"redis": func(t *testing.T) domainrepos.ThreadRepository {
			return NewRedisThreadRepository(newTestRedis(t))
		},
	}
}
