package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Collection is a typed view over one named list in a RecordStore. Update
// serializes read-modify-write cycles within the process; writers in other
// processes are last-write-wins.
type Collection[T any] struct {
	name string
	rs   RecordStore
	mu   sync.Mutex
}

func NewCollection[T any](rs RecordStore, name string) *Collection[T] {
	return &Collection[T]{name: name, rs: rs}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, items)
}

// Update hands the current items to fn and persists what it returns. If fn
// returns ErrNoChange nothing is written and Update returns nil.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	next, err := fn(items)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}

func (c *Collection[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rs.Clear(ctx, c.name)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	payload, err := c.rs.Get(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	return c.rs.Set(ctx, c.name, payload)
}

// Document is a typed view over a collection holding a single object.
type Document[T any] struct {
	name string
	rs   RecordStore
	mu   sync.Mutex
}

func NewDocument[T any](rs RecordStore, name string) *Document[T] {
	return &Document[T]{name: name, rs: rs}
}

// Load returns ErrNotFound when the document was never saved or was cleared.
func (d *Document[T]) Load(ctx context.Context) (*T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	payload, err := d.rs.Get(ctx, d.name)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, ErrNotFound
	}

	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.name, err)
	}
	return &v, nil
}

func (d *Document[T]) Save(ctx context.Context, v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.name, err)
	}
	return d.rs.Set(ctx, d.name, payload)
}

func (d *Document[T]) Clear(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rs.Clear(ctx, d.name)
}
