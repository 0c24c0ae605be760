package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrMiss is returned by Get when the key is absent or expired.
	ErrMiss = errors.New("cache miss")
	// ErrStale is returned by Set when the view was invalidated after the
	// caller read the generation it built against.
	ErrStale = errors.New("cached view is stale")
)

// ViewCache stores rendered public views per tournament. Every Invalidate
// bumps the tournament's generation; Set only stores a view built against
// the current one.
type ViewCache interface {
	Get(ctx context.Context, tournamentID int) ([]byte, error)
	Generation(ctx context.Context, tournamentID int) (int64, error)
	Set(ctx context.Context, tournamentID int, generation int64, value []byte) error
	Invalidate(ctx context.Context, tournamentID int) error
	Close() error
}

// PublicViewKey is the key of the public tournament page.
func PublicViewKey(tournamentID int) string {
	return fmt.Sprintf("padel:public:tournament:%d", tournamentID)
}

func generationKey(tournamentID int) string {
	return PublicViewKey(tournamentID) + ":gen"
}

type redisViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisViewCache connects to Redis and checks the connection with a ping.
func NewRedisViewCache(addr, password string, ttl time.Duration) (ViewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &redisViewCache{client: client, ttl: ttl}, nil
}

func (c *redisViewCache) Get(ctx context.Context, tournamentID int) ([]byte, error) {
	key := PublicViewKey(tournamentID)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (c *redisViewCache) Generation(ctx context.Context, tournamentID int) (int64, error) {
	key := generationKey(tournamentID)
	return parseGeneration(key, c.client.Get(ctx, key))
}

func parseGeneration(key string, cmd *redis.StringCmd) (int64, error) {
	gen, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", key, err)
	}
	return gen, nil
}

func (c *redisViewCache) Set(ctx context.Context, tournamentID int, generation int64, value []byte) error {
	key, genKey := PublicViewKey(tournamentID), generationKey(tournamentID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := parseGeneration(genKey, tx.Get(ctx, genKey))
		if err != nil {
			return err
		}
		if current != generation {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, c.ttl)
			return nil
		})
		return err
	}, genKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	default:
		return fmt.Errorf("redis set %s: %w", key, err)
	}
}

func (c *redisViewCache) Invalidate(ctx context.Context, tournamentID int) error {
	key := PublicViewKey(tournamentID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(tournamentID))
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate %s: %w", key, err)
	}
	return nil
}

func (c *redisViewCache) Close() error {
	return c.client.Close()
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

type memoryViewCache struct {
	mu          sync.Mutex
	ttl         time.Duration
	now         func() time.Time
	entries     map[int]memoryEntry
	generations map[int]int64
}

// NewMemoryViewCache is the process-local fallback used when Redis is not configured.
func NewMemoryViewCache(ttl time.Duration) ViewCache {
	return &memoryViewCache{
		ttl:         ttl,
		now:         time.Now,
		entries:     map[int]memoryEntry{},
		generations: map[int]int64{},
	}
}

func (c *memoryViewCache) Get(_ context.Context, tournamentID int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[tournamentID]
	if !ok || !c.now().Before(e.expires) {
		delete(c.entries, tournamentID)
		return nil, ErrMiss
	}
	return e.value, nil
}

func (c *memoryViewCache) Generation(_ context.Context, tournamentID int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[tournamentID], nil
}

func (c *memoryViewCache) Set(_ context.Context, tournamentID int, generation int64, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[tournamentID] != generation {
		return ErrStale
	}
	c.entries[tournamentID] = memoryEntry{value: value, expires: c.now().Add(c.ttl)}
	return nil
}

func (c *memoryViewCache) Invalidate(_ context.Context, tournamentID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[tournamentID]++
	delete(c.entries, tournamentID)
	return nil
}

func (c *memoryViewCache) Close() error { return nil }
