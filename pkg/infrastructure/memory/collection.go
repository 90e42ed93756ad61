package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"storefront/pkg/domain/model"
)

// accessor resolves a filterable field of an item.
type accessor[T any] func(item T, field string) (interface{}, bool)

type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	field accessor[T]
	clone func(T) T
}

func newCollection[T any](field accessor[T], clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(item T) T { return item }
	}
	return &collection[T]{items: make(map[string]T), field: field, clone: clone}
}

func (c *collection[T]) insert(id string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = c.clone(item)
}

func (c *collection[T]) replace(id string, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = c.clone(item)
	return true
}

func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return item, false
	}
	return c.clone(item), true
}

// all returns matching items in insertion order.
func (c *collection[T]) all(filter model.Filter) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, id := range c.order {
		item := c.items[id]
		ok, err := c.matches(item, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, c.clone(item))
		}
	}
	return out, nil
}

func (c *collection[T]) find(query model.Query) ([]T, error) {
	items, err := c.all(query.Filter)
	if err != nil {
		return nil, err
	}

	if query.Sort != nil {
		var sortErr error
		sort.SliceStable(items, func(i, j int) bool {
			a, okA := c.field(items[i], query.Sort.Field)
			b, okB := c.field(items[j], query.Sort.Field)
			if !okA || !okB {
				sortErr = errors.Errorf("unsupported sort field %q", query.Sort.Field)
				return false
			}
			cmp, err := compare(a, b)
			if err != nil {
				sortErr = err
				return false
			}
			if query.Sort.Order == model.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
	}

	if query.Skip > 0 {
		if query.Skip >= int64(len(items)) {
			return []T{}, nil
		}
		items = items[query.Skip:]
	}
	if query.Limit > 0 && query.Limit < int64(len(items)) {
		items = items[:query.Limit]
	}
	return items, nil
}

func (c *collection[T]) count(filter model.Filter) (int64, error) {
	items, err := c.all(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (c *collection[T]) distinct(field string, filter model.Filter) ([]string, error) {
	items, err := c.all(filter)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, item := range items {
		v, ok := c.field(item, field)
		if !ok {
			return nil, errors.Errorf("unsupported distinct field %q", field)
		}
		s := cast.ToString(v)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}
	sort.Strings(values)
	return values, nil
}

func (c *collection[T]) matches(item T, filter model.Filter) (bool, error) {
	for _, p := range filter {
		v, ok := c.field(item, p.Field)
		if !ok {
			return false, errors.Errorf("unsupported filter field %q", p.Field)
		}
		ok, err := match(v, p)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func match(value interface{}, p model.Predicate) (bool, error) {
	if p.Operator == model.OpContainsFold {
		return strings.Contains(strings.ToLower(cast.ToString(value)), strings.ToLower(cast.ToString(p.Value))), nil
	}
	cmp, err := compare(value, p.Value)
	if err != nil {
		return false, err
	}
	switch p.Operator {
	case model.OpEq:
		return cmp == 0, nil
	case model.OpGt:
		return cmp > 0, nil
	case model.OpGte:
		return cmp >= 0, nil
	case model.OpLt:
		return cmp < 0, nil
	case model.OpLte:
		return cmp <= 0, nil
	}
	return false, errors.Errorf("unsupported operator %q", p.Operator)
}

func compare(a, b interface{}) (int, error) {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, errors.Errorf("cannot compare time with %T", b)
		}
		switch {
		case av.Before(bv):
			return -1, nil
		case av.After(bv):
			return 1, nil
		}
		return 0, nil
	case string:
		return strings.Compare(av, cast.ToString(b)), nil
	}

	af, err := cast.ToFloat64E(a)
	if err != nil {
		return 0, errors.Wrap(err, "compare")
	}
	bf, err := cast.ToFloat64E(b)
	if err != nil {
		return 0, errors.Wrap(err, "compare")
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	}
	return 0, nil
}
