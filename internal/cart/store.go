package cart

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// redisStore is the minimal redis surface the cart needs.
type redisStore interface {
	HSet(ctx context.Context, key string, values ...any) error
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	CartKey(userID string) string
}

// Line is a single cart entry. AddedAt keeps the order items entered the
// cart, which later fixes the vendor grouping order at checkout.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
	AddedAt   time.Time
}

// Store keeps each user's cart as a redis hash of product id to
// "quantity|addedAtUnixNano".
type Store struct {
	redis redisStore
	ttl   time.Duration
	now   func() time.Time
}

// NewStore builds a cart store with the provided TTL per cart key.
func NewStore(redis redisStore, ttl time.Duration) (*Store, error) {
	if redis == nil {
		return nil, fmt.Errorf("redis store is required")
	}
	return &Store{redis: redis, ttl: ttl, now: time.Now}, nil
}

// Lines returns the user's cart entries sorted by when they were added.
func (s *Store) Lines(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	raw, err := s.redis.HGetAll(ctx, s.redis.CartKey(userID.String()))
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(raw))
	for field, value := range raw {
		productID, err := uuid.Parse(field)
		if err != nil {
			continue
		}
		line, ok := decodeLine(value)
		if !ok {
			continue
		}
		line.ProductID = productID
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].AddedAt.Equal(lines[j].AddedAt) {
			return lines[i].ProductID.String() < lines[j].ProductID.String()
		}
		return lines[i].AddedAt.Before(lines[j].AddedAt)
	})
	return lines, nil
}

// SetLine writes the quantity for a product, refreshing the cart TTL. The
// added-at timestamp survives quantity updates so ordering stays stable.
func (s *Store) SetLine(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	key := s.redis.CartKey(userID.String())
	field := productID.String()

	addedAt := s.now().UTC()
	if existing, err := s.redis.HGet(ctx, key, field); err == nil {
		if line, ok := decodeLine(existing); ok {
			addedAt = line.AddedAt
		}
	}

	if err := s.redis.HSet(ctx, key, field, encodeLine(quantity, addedAt)); err != nil {
		return err
	}
	if s.ttl > 0 {
		return s.redis.Expire(ctx, key, s.ttl)
	}
	return nil
}

// RemoveLine deletes a single product from the cart.
func (s *Store) RemoveLine(ctx context.Context, userID, productID uuid.UUID) error {
	return s.redis.HDel(ctx, s.redis.CartKey(userID.String()), productID.String())
}

// Clear drops the whole cart.
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.redis.Del(ctx, s.redis.CartKey(userID.String()))
}

func encodeLine(quantity int, addedAt time.Time) string {
	return strconv.Itoa(quantity) + "|" + strconv.FormatInt(addedAt.UnixNano(), 10)
}

func decodeLine(value string) (Line, bool) {
	parts := strings.SplitN(value, "|", 2)
	qty, err := strconv.Atoi(parts[0])
	if err != nil || qty < 1 {
		return Line{}, false
	}
	line := Line{Quantity: qty}
	if len(parts) == 2 {
		if nanos, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
			line.AddedAt = time.Unix(0, nanos).UTC()
		}
	}
	return line, true
}
