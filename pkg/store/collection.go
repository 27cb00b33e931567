package store

import (
	"context"
	"encoding/json"
)

// Collection is a typed view over one namespace of a Store. Records are
// encoded as field-named JSON so that fields can be added later without
// breaking older records.
type Collection[T any] struct {
	store Store
	ns    Namespace
}

// NewCollection binds a record type to a namespace.
func NewCollection[T any](s Store, ns Namespace) *Collection[T] {
	return &Collection[T]{store: s, ns: ns}
}

// Namespace returns the namespace the collection is bound to.
func (c *Collection[T]) Namespace() Namespace {
	return c.ns
}

// Put encodes and stores record under key.
func (c *Collection[T]) Put(ctx context.Context, key string, record *T) error {
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return Persistence("encode "+string(c.ns), err)
	}
	return c.store.Put(ctx, c.ns, key, data)
}

// Get loads the record under key. A record that fails to decode is
// reported as absent.
func (c *Collection[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, ok := c.store.Get(ctx, c.ns, key)
	if !ok {
		return nil, false
	}
	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false
	}
	return &record, true
}

// Delete removes the record under key.
func (c *Collection[T]) Delete(ctx context.Context, key string) bool {
	return c.store.Delete(ctx, c.ns, key)
}

// List decodes every record of the namespace, skipping malformed ones.
func (c *Collection[T]) List(ctx context.Context) []*T {
	raw := c.store.List(ctx, c.ns)
	out := make([]*T, 0, len(raw))
	for _, data := range raw {
		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		out = append(out, &record)
	}
	return out
}
