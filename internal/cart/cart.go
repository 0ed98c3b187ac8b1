package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dbtypes "github.com/trosone/tros-backend/pkg/db/types"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	redispkg "github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long an abandoned cart survives in redis.
const DefaultTTL = 7 * 24 * time.Hour

type cartStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// Cart is the redis-persisted working order for one user.
type Cart struct {
	ShopID   string             `json:"shop_id,omitempty"`
	ShopName string             `json:"shop_name,omitempty"`
	Items    dbtypes.OrderItems `json:"items"`
}

// Service stores one cart per user id. Each Put replaces the whole cart.
type Service interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Put(ctx context.Context, userID string, cart Cart) error
	Clear(ctx context.Context, userID string) error
}

type service struct {
	store cartStore
	ttl   time.Duration
}

// NewService builds a cart service over the shared redis client.
func NewService(store cartStore, ttl time.Duration) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &service{store: store, ttl: ttl}, nil
}

// Get returns the user's cart; a missing key yields an empty cart.
func (s *service) Get(ctx context.Context, userID string) (*Cart, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(userID))
	if errors.Is(err, redispkg.Nil) {
		return &Cart{Items: dbtypes.OrderItems{}}, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	if cart.Items == nil {
		cart.Items = dbtypes.OrderItems{}
	}
	return &cart, nil
}

// Put replaces the stored cart wholesale.
func (s *service) Put(ctx context.Context, userID string, cart Cart) error {
	if cart.Items == nil {
		cart.Items = dbtypes.OrderItems{}
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(userID), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// Clear deletes the stored cart.
func (s *service) Clear(ctx context.Context, userID string) error {
	if err := s.store.Del(ctx, s.store.CartKey(userID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
