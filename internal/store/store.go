// Package store is a minimal object-store abstraction: named collections of
// JSON records keyed by id, with optional secondary indexes. Schemas are
// declared up front through a Catalog, then served by a pluggable Driver
// (in-memory or Redis).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mjaasund/steeldart/internal/model"
)

// Index declares a secondary index over a collection. Value extracts the
// indexed value from an item; Unique indexes map one value to one key.
type Index[T any] struct {
	Name   string
	Value  func(T) string
	Unique bool
}

// Schema is an entity descriptor: collection name, primary key extractor
// and secondary indexes. It is decoupled from the entity type itself.
type Schema[T any] struct {
	Collection string
	Key        func(T) string
	Indexes    []Index[T]
}

// CollectionName implements SchemaInfo
func (s Schema[T]) CollectionName() string { return s.Collection }

// SchemaInfo is the type-erased view of a Schema held by the catalog
type SchemaInfo interface {
	CollectionName() string
}

// IndexEntry is one index mutation handed to a driver alongside a write
type IndexEntry struct {
	Index  string
	Value  string
	Unique bool
}

// Driver persists raw records for collections. Implementations must make
// each write a single atomic record replace and must be safe for
// concurrent use.
type Driver interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	GetByIndex(ctx context.Context, collection, index, value string, unique bool) ([]byte, error)
	GetAllByIndex(ctx context.Context, collection, index, value string, unique bool) ([][]byte, error)
	GetAll(ctx context.Context, collection string) ([][]byte, error)
	Exists(ctx context.Context, collection, key string) (bool, error)
	Put(ctx context.Context, collection, key string, data []byte, add, remove []IndexEntry) error
	Delete(ctx context.Context, collection, key string, remove []IndexEntry) error
	Close() error
}

// Catalog tracks database setups. Registration is one-shot per database
// name so a misconfigured double setup fails fast.
type Catalog struct {
	mu     sync.Mutex
	setups map[string][]SchemaInfo
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{setups: make(map[string][]SchemaInfo)}
}

// Register declares the collections of a named database. Registering the
// same database name twice is a configuration error.
func (c *Catalog) Register(dbName string, schemas ...SchemaInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.setups[dbName]; ok {
		return fmt.Errorf("%w: %s", model.ErrDuplicateSetup, dbName)
	}
	c.setups[dbName] = schemas
	return nil
}

// Connect binds a registered database to a driver
func (c *Catalog) Connect(dbName string, driver Driver) (*Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	schemas, ok := c.setups[dbName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownDatabase, dbName)
	}

	collections := make(map[string]SchemaInfo, len(schemas))
	for _, s := range schemas {
		collections[s.CollectionName()] = s
	}

	return &Database{
		name:        dbName,
		driver:      driver,
		collections: collections,
	}, nil
}

// Database is a connected set of collections backed by one driver
type Database struct {
	name        string
	driver      Driver
	collections map[string]SchemaInfo
}

// Close releases the underlying driver
func (d *Database) Close() error {
	return d.driver.Close()
}

// CollectionOf returns the typed collection for a schema. The schema must
// have been registered for this database.
func CollectionOf[T any](db *Database, schema Schema[T]) (*Collection[T], error) {
	if _, ok := db.collections[schema.Collection]; !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownCollection, schema.Collection)
	}
	return &Collection[T]{schema: schema, driver: db.driver}, nil
}

// Collection gives typed access to one collection's records
type Collection[T any] struct {
	schema Schema[T]
	driver Driver
}

// Get returns the item stored under key
func (c *Collection[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	data, err := c.driver.Get(ctx, c.schema.Collection, key)
	if err != nil {
		return zero, err
	}
	return c.decode(data)
}

// GetByIndex returns the first item whose indexed value matches
func (c *Collection[T]) GetByIndex(ctx context.Context, index, value string) (T, error) {
	var zero T
	idx, err := c.findIndex(index)
	if err != nil {
		return zero, err
	}
	data, err := c.driver.GetByIndex(ctx, c.schema.Collection, idx.Name, value, idx.Unique)
	if err != nil {
		return zero, err
	}
	return c.decode(data)
}

// GetAllByIndex returns every item whose indexed value matches
func (c *Collection[T]) GetAllByIndex(ctx context.Context, index, value string) ([]T, error) {
	idx, err := c.findIndex(index)
	if err != nil {
		return nil, err
	}
	raw, err := c.driver.GetAllByIndex(ctx, c.schema.Collection, idx.Name, value, idx.Unique)
	if err != nil {
		return nil, err
	}
	return c.decodeAll(raw)
}

// GetAll returns every item in the collection
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	raw, err := c.driver.GetAll(ctx, c.schema.Collection)
	if err != nil {
		return nil, err
	}
	return c.decodeAll(raw)
}

// Add stores a new item and fails if its key already exists
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	key := c.schema.Key(item)
	exists, err := c.driver.Exists(ctx, c.schema.Collection, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s/%s", model.ErrKeyExists, c.schema.Collection, key)
	}
	return c.write(ctx, key, item)
}

// Put upserts an item, replacing any record under the same key
func (c *Collection[T]) Put(ctx context.Context, item T) error {
	return c.write(ctx, c.schema.Key(item), item)
}

// Delete removes the record under key. Deleting a missing key is a no-op.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	remove, err := c.entriesForStored(ctx, key)
	if err != nil {
		return err
	}
	return c.driver.Delete(ctx, c.schema.Collection, key, remove)
}

func (c *Collection[T]) write(ctx context.Context, key string, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	// Index entries of any overwritten record must be retired in the
	// same write, or stale values would keep resolving to this key.
	remove, err := c.entriesForStored(ctx, key)
	if err != nil {
		return err
	}

	return c.driver.Put(ctx, c.schema.Collection, key, data, c.entries(item), remove)
}

func (c *Collection[T]) entriesForStored(ctx context.Context, key string) ([]IndexEntry, error) {
	if len(c.schema.Indexes) == 0 {
		return nil, nil
	}
	data, err := c.driver.Get(ctx, c.schema.Collection, key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	old, err := c.decode(data)
	if err != nil {
		return nil, err
	}
	return c.entries(old), nil
}

func (c *Collection[T]) entries(item T) []IndexEntry {
	entries := make([]IndexEntry, 0, len(c.schema.Indexes))
	for _, idx := range c.schema.Indexes {
		entries = append(entries, IndexEntry{
			Index:  idx.Name,
			Value:  idx.Value(item),
			Unique: idx.Unique,
		})
	}
	return entries
}

func (c *Collection[T]) findIndex(name string) (Index[T], error) {
	for _, idx := range c.schema.Indexes {
		if idx.Name == name {
			return idx, nil
		}
	}
	return Index[T]{}, fmt.Errorf("%w: %s.%s", model.ErrUnknownIndex, c.schema.Collection, name)
}

func (c *Collection[T]) decode(data []byte) (T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

func (c *Collection[T]) decodeAll(raw [][]byte) ([]T, error) {
	items := make([]T, 0, len(raw))
	for _, data := range raw {
		item, err := c.decode(data)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
