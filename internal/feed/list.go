package feed

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Item is anything that can live in a feed list.
type Item interface {
	FeedTime() time.Time
	FeedKey() string
}

// List is a bounded list kept in descending timestamp order. Every
// read-modify-write is serialized so the tick and fetch paths cannot lose
// each other's updates.
type List[T Item] struct {
	mu    sync.Mutex
	limit int
	items []T
}

// NewList creates a list holding at most limit items.
func NewList[T Item](limit int, initial ...T) *List[T] {
	l := &List[T]{limit: limit}
	if len(initial) > 0 {
		l.items = append(l.items, initial...)
		l.normalize()
	}
	return l
}

// Add prepends item, re-sorts and truncates.
func (l *List[T]) Add(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T{item}, l.items...)
	l.normalize()
}

// Merge inserts externally fetched items, skipping any whose key already
// appears in the list (case-insensitive). It returns how many were added.
func (l *List[T]) Merge(items []T) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]struct{}, len(l.items)+len(items))
	for _, it := range l.items {
		seen[dedupeKey(it)] = struct{}{}
	}
	fresh := make([]T, 0, len(items))
	for _, it := range items {
		k := dedupeKey(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		fresh = append(fresh, it)
	}
	if len(fresh) == 0 {
		return 0
	}
	l.items = append(fresh, l.items...)
	l.normalize()
	return len(fresh)
}

// Items returns a copy of the list contents, newest first.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Len returns the current number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Limit returns the list bound.
func (l *List[T]) Limit() int { return l.limit }

func (l *List[T]) normalize() {
	slices.SortStableFunc(l.items, func(a, b T) int {
		return b.FeedTime().Compare(a.FeedTime())
	})
	if l.limit >= 0 && len(l.items) > l.limit {
		clear(l.items[l.limit:])
		l.items = l.items[:l.limit]
	}
}

func dedupeKey(it Item) string {
	return strings.ToLower(strings.TrimSpace(it.FeedKey()))
}
