package memory

import (
	"context"
	"sync"

	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/store"
)

// Driver is an in-memory implementation of the store driver
type Driver struct {
	mu sync.RWMutex

	// collection -> key -> record
	records map[string]map[string][]byte
	// collection -> index -> value -> set of keys
	indexes map[string]map[string]map[string]map[string]struct{}
}

// New creates a new in-memory driver
func New() *Driver {
	return &Driver{
		records: make(map[string]map[string][]byte),
		indexes: make(map[string]map[string]map[string]map[string]struct{}),
	}
}

// Ensure Driver implements the interface
var _ store.Driver = (*Driver)(nil)

func (d *Driver) Get(ctx context.Context, collection, key string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, ok := d.records[collection][key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return data, nil
}

func (d *Driver) GetByIndex(ctx context.Context, collection, index, value string, unique bool) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for key := range d.indexes[collection][index][value] {
		data, ok := d.records[collection][key]
		if !ok {
			continue
		}
		return data, nil
	}
	return nil, model.ErrNotFound
}

func (d *Driver) GetAllByIndex(ctx context.Context, collection, index, value string, unique bool) ([][]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var result [][]byte
	for key := range d.indexes[collection][index][value] {
		if data, ok := d.records[collection][key]; ok {
			result = append(result, data)
		}
	}
	return result, nil
}

func (d *Driver) GetAll(ctx context.Context, collection string) ([][]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([][]byte, 0, len(d.records[collection]))
	for _, data := range d.records[collection] {
		result = append(result, data)
	}
	return result, nil
}

func (d *Driver) Exists(ctx context.Context, collection, key string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.records[collection][key]
	return ok, nil
}

func (d *Driver) Put(ctx context.Context, collection, key string, data []byte, add, remove []store.IndexEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Unique index values may only resolve to this key.
	for _, e := range add {
		if !e.Unique {
			continue
		}
		for existing := range d.indexes[collection][e.Index][e.Value] {
			if existing != key {
				return model.ErrKeyExists
			}
		}
	}

	if d.records[collection] == nil {
		d.records[collection] = make(map[string][]byte)
	}
	d.records[collection][key] = data

	for _, e := range remove {
		delete(d.indexes[collection][e.Index][e.Value], key)
	}
	for _, e := range add {
		d.indexEntry(collection, e.Index, e.Value)[key] = struct{}{}
	}
	return nil
}

func (d *Driver) Delete(ctx context.Context, collection, key string, remove []store.IndexEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.records[collection], key)
	for _, e := range remove {
		delete(d.indexes[collection][e.Index][e.Value], key)
	}
	return nil
}

func (d *Driver) Close() error {
	return nil
}

func (d *Driver) indexEntry(collection, index, value string) map[string]struct{} {
	if d.indexes[collection] == nil {
		d.indexes[collection] = make(map[string]map[string]map[string]struct{})
	}
	if d.indexes[collection][index] == nil {
		d.indexes[collection][index] = make(map[string]map[string]struct{})
	}
	if d.indexes[collection][index][value] == nil {
		d.indexes[collection][index][value] = make(map[string]struct{})
	}
	return d.indexes[collection][index][value]
}
