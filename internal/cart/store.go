package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists session carts in redis, one JSON blob per cart token. A
// missing key decodes as an empty cart, so callers never distinguish "no cart
// yet" from "cart emptied".
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(addr string, ttl time.Duration) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) key(token string) string {
	return fmt.Sprintf("cart:%s", token)
}

func (s *Store) Get(ctx context.Context, token string) (Cart, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, err
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Save writes the cart back and refreshes the session TTL. Saving an empty
// cart deletes the key instead.
func (s *Store) Save(ctx context.Context, token string, c Cart) error {
	if c.IsEmpty() {
		return s.Clear(ctx, token)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(token), raw, s.ttl).Err()
}

func (s *Store) Clear(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}
