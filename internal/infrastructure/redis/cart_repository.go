// Package redis contiene los adaptadores de persistencia sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo guarda el carrito de cada usuario como un documento JSON en Redis
// con TTL: un carrito abandonado expira solo, sin job de limpieza.
type CartRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository construye el adaptador. ttl <= 0 usa 7 días.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepo {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &CartRepo{client: client, ttl: ttl}
}

func cartKey(userID string) string {
	return "carrito:usuario:" + userID
}

// Get devuelve el carrito del usuario, nil si no existe o ya expiró.
func (r *CartRepo) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	raw, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get carrito: %w", err)
	}
	var cart entity.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal carrito: %w", err)
	}
	return &cart, nil
}

// Save guarda el carrito completo y renueva el TTL.
func (r *CartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal carrito: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(cart.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save carrito: %w", err)
	}
	return nil
}

// Delete elimina el carrito del usuario.
func (r *CartRepo) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete carrito: %w", err)
	}
	return nil
}
