// Package collection turns a raw record store into typed repositories. Every
// read-modify-write cycle on a collection is serialized by its own mutex.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
	"github.com/accesshub/accounts-api/internal/pkg/metrics"
)

const (
	Users = "users"
	Roles = "roles"
)

// Collection is a typed view over one named collection of a record store.
type Collection[T any] struct {
	name  string
	store ports.RecordStore
	mu    sync.Mutex
}

func New[T any](store ports.RecordStore, name string) *Collection[T] {
	return &Collection[T]{name: name, store: store}
}

// NewUsers returns the users collection of store.
func NewUsers(store ports.RecordStore) *Collection[domain.User] {
	return New[domain.User](store, Users)
}

// NewRoles returns the roles collection of store.
func NewRoles(store ports.RecordStore) *Collection[domain.Role] {
	return New[domain.Role](store, Roles)
}

// All returns every record in stored order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

// Modify loads the collection, applies fn and saves the result while holding
// the collection lock. An error from fn aborts the cycle without writing.
func (c *Collection[T]) Modify(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(ctx, updated)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	start := time.Now()
	raws, err := c.store.Load(ctx, c.name)
	c.observe("load", start, err)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("load %s: record %d: %w: %v", c.name, i, domain.ErrCorruptData, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	raws := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("save %s: %w: %v", c.name, domain.ErrCorruptData, err)
		}
		raws = append(raws, raw)
	}

	start := time.Now()
	err := c.store.Save(ctx, c.name, raws)
	c.observe("save", start, err)
	if err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.StoreOperationsTotal.WithLabelValues(c.name, op, result).Inc()
	metrics.StoreOperationDuration.WithLabelValues(c.name, op).Observe(time.Since(start).Seconds())
}
