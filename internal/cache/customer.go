package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/vmihailenco/msgpack/v5"
)

const cachedCustomerTimeToLive = 10 * time.Minute

// CustomerCacheRepository is read-through cache for customers.
// FindByID returns nil without error on cache miss.
type CustomerCacheRepository interface {
	FindByID(context.Context, string) (*model.Customer, error)
	Create(context.Context, *model.Customer) error
	DeleteByID(context.Context, string) error
}

type redisCustomerCacheRepository struct {
	client *redis.Client
}

// NewRedisCustomerCacheRepository builds customer cache over redis,
// entries are msgpack-encoded and expire after a fixed TTL
func NewRedisCustomerCacheRepository(client *redis.Client) CustomerCacheRepository {
	return &redisCustomerCacheRepository{client: client}
}

func (r *redisCustomerCacheRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	res, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.NewStorageErr("read cached customer", err)
	}

	var c model.Customer
	if err := msgpack.Unmarshal([]byte(res), &c); err != nil {
		return nil, apperrors.NewStorageErr("decode cached customer", err)
	}

	return &c, nil
}

func (r *redisCustomerCacheRepository) Create(ctx context.Context, c *model.Customer) error {
	encoded, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}

	if _, err := r.client.SetNX(ctx, r.key(c.ID), encoded, cachedCustomerTimeToLive).Result(); err != nil {
		return apperrors.NewStorageErr("cache customer", err)
	}
	return nil
}

func (r *redisCustomerCacheRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.client.Del(ctx, r.key(id)).Result(); err != nil {
		return apperrors.NewStorageErr("evict cached customer", err)
	}
	return nil
}

func (r *redisCustomerCacheRepository) key(id string) string {
	return fmt.Sprintf("customer:%s", id)
}

type noopCustomerCacheRepository struct{}

// NewNoopCustomerCacheRepository builds a cache that never hits,
// used when redis is not configured
func NewNoopCustomerCacheRepository() CustomerCacheRepository {
	return &noopCustomerCacheRepository{}
}

func (noopCustomerCacheRepository) FindByID(context.Context, string) (*model.Customer, error) {
	return nil, nil
}

func (noopCustomerCacheRepository) Create(context.Context, *model.Customer) error {
	return nil
}

func (noopCustomerCacheRepository) DeleteByID(context.Context, string) error {
	return nil
}
