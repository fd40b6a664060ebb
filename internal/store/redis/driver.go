package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/store"
)

// Driver is a Redis-backed implementation of the store driver
type Driver struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis driver
func New(cfg Config) (*Driver, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Driver{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis driver with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Driver {
	return &Driver{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (d *Driver) Close() error {
	return d.client.Close()
}

// Ensure Driver implements the interface
var _ store.Driver = (*Driver)(nil)

func (d *Driver) Get(ctx context.Context, collection, key string) ([]byte, error) {
	data, err := d.client.Get(ctx, d.recordKey(collection, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (d *Driver) GetByIndex(ctx context.Context, collection, index, value string, unique bool) ([]byte, error) {
	key, err := d.resolveIndexKey(ctx, collection, index, value, unique)
	if err != nil {
		return nil, err
	}
	return d.Get(ctx, collection, key)
}

func (d *Driver) GetAllByIndex(ctx context.Context, collection, index, value string, unique bool) ([][]byte, error) {
	idxKey := d.indexKey(collection, index, value)

	var keys []string
	if unique {
		key, err := d.client.Get(ctx, idxKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, nil
			}
			return nil, err
		}
		keys = []string{key}
	} else {
		var err error
		keys, err = d.client.SMembers(ctx, idxKey).Result()
		if err != nil {
			return nil, err
		}
	}

	return d.fetchRecords(ctx, collection, keys)
}

func (d *Driver) GetAll(ctx context.Context, collection string) ([][]byte, error) {
	keys, err := d.client.SMembers(ctx, d.keySetKey(collection)).Result()
	if err != nil {
		return nil, err
	}
	return d.fetchRecords(ctx, collection, keys)
}

func (d *Driver) Exists(ctx context.Context, collection, key string) (bool, error) {
	n, err := d.client.Exists(ctx, d.recordKey(collection, key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *Driver) Put(ctx context.Context, collection, key string, data []byte, add, remove []store.IndexEntry) error {
	// Unique index values may only resolve to this key.
	for _, e := range add {
		if !e.Unique {
			continue
		}
		existing, err := d.client.Get(ctx, d.indexKey(collection, e.Index, e.Value)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil && existing != key {
			return model.ErrKeyExists
		}
	}

	// Record write plus index maintenance in one pipeline
	pipe := d.client.Pipeline()
	pipe.Set(ctx, d.recordKey(collection, key), data, 0)
	pipe.SAdd(ctx, d.keySetKey(collection), key)

	for _, e := range remove {
		if e.Unique {
			pipe.Del(ctx, d.indexKey(collection, e.Index, e.Value))
		} else {
			pipe.SRem(ctx, d.indexKey(collection, e.Index, e.Value), key)
		}
	}
	for _, e := range add {
		if e.Unique {
			pipe.Set(ctx, d.indexKey(collection, e.Index, e.Value), key, 0)
		} else {
			pipe.SAdd(ctx, d.indexKey(collection, e.Index, e.Value), key)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (d *Driver) Delete(ctx context.Context, collection, key string, remove []store.IndexEntry) error {
	pipe := d.client.Pipeline()
	pipe.Del(ctx, d.recordKey(collection, key))
	pipe.SRem(ctx, d.keySetKey(collection), key)

	for _, e := range remove {
		if e.Unique {
			pipe.Del(ctx, d.indexKey(collection, e.Index, e.Value))
		} else {
			pipe.SRem(ctx, d.indexKey(collection, e.Index, e.Value), key)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (d *Driver) resolveIndexKey(ctx context.Context, collection, index, value string, unique bool) (string, error) {
	idxKey := d.indexKey(collection, index, value)

	if unique {
		key, err := d.client.Get(ctx, idxKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return "", model.ErrNotFound
			}
			return "", err
		}
		return key, nil
	}

	keys, err := d.client.SMembers(ctx, idxKey).Result()
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return "", model.ErrNotFound
	}
	return keys[0], nil
}

func (d *Driver) fetchRecords(ctx context.Context, collection string, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	recordKeys := make([]string, len(keys))
	for i, k := range keys {
		recordKeys[i] = d.recordKey(collection, k)
	}

	values, err := d.client.MGet(ctx, recordKeys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([][]byte, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Record removed since the key set was read
		}
		result = append(result, []byte(val.(string)))
	}
	return result, nil
}
