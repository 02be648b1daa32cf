package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is the backing store for cached responses.
type Store interface {
	// Get returns the cached entry for key, with ok=false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores an entry under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NewRedisStore creates a Store backed by redis. Eviction is handled by the
// per-entry TTL; nothing is ever invalidated by hand.
func NewRedisStore(cfg Config) Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisStore{client: client}
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// entry is the serialized form of a cached response.
type entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Middleware caches successful GET responses keyed by request path.
type Middleware struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	sf     singleflight.Group
}

// New creates the cache middleware.
func New(store Store, ttl time.Duration, logger *zap.Logger) *Middleware {
	return &Middleware{store: store, ttl: ttl, logger: logger}
}

// Handler returns the fiber handler for this middleware.
func (m *Middleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := "httpcache:" + c.Path()
		if qs := string(c.Request().URI().QueryString()); qs != "" {
			key += "?" + qs
		}

		if raw, ok, err := m.store.Get(c.Context(), key); err != nil {
			// A broken cache backend must never take down reads.
			m.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return replay(c, raw)
		}

		// Collapse concurrent misses on the same key: only one request
		// executes the handler chain, the rest replay its response.
		executed := false
		v, err, _ := m.sf.Do(key, func() (any, error) {
			executed = true
			if err := c.Next(); err != nil {
				return nil, err
			}

			e := entry{
				Status:      c.Response().StatusCode(),
				ContentType: string(c.Response().Header.ContentType()),
			}
			e.Body = append(e.Body, c.Response().Body()...)

			if e.Status == fiber.StatusOK {
				payload, marshalErr := json.Marshal(e)
				if marshalErr == nil {
					if setErr := m.store.Set(c.Context(), key, payload, m.ttl); setErr != nil {
						m.logger.Warn("cache store failed", zap.String("key", key), zap.Error(setErr))
					}
				}
			}
			return e, nil
		})
		if err != nil {
			return err
		}
		if !executed {
			return replayEntry(c, v.(entry))
		}
		return nil
	}
}

func replay(c *fiber.Ctx, data []byte) error {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		// Corrupt entry: fall through to the real handler.
		return c.Next()
	}
	return replayEntry(c, e)
}

func replayEntry(c *fiber.Ctx, e entry) error {
	if e.ContentType != "" {
		c.Set(fiber.HeaderContentType, e.ContentType)
	}
	return c.Status(e.Status).Send(e.Body)
}
