package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Breakdown maps a categorical key to a fixed-shape record and keeps the key order of the
// source document. The zero value is an empty breakdown.
type Breakdown[T any] struct {
	entries *orderedmap.OrderedMap[string, T]
}

type BreakdownEntry[T any] struct {
	Key   string
	Value T
}

// NewBreakdown builds a breakdown from entries, in the given order.
func NewBreakdown[T any](entries ...BreakdownEntry[T]) Breakdown[T] {
	var b Breakdown[T]
	for _, e := range entries {
		b.Set(e.Key, e.Value)
	}
	return b
}

func (b *Breakdown[T]) Set(key string, value T) {
	if b.entries == nil {
		b.entries = orderedmap.New[string, T]()
	}
	b.entries.Set(key, value)
}

func (b Breakdown[T]) Get(key string) (T, bool) {
	if b.entries == nil {
		var zero T
		return zero, false
	}
	return b.entries.Get(key)
}

func (b Breakdown[T]) Len() int {
	if b.entries == nil {
		return 0
	}
	return b.entries.Len()
}

// Entries returns the breakdown in source order.
func (b Breakdown[T]) Entries() []BreakdownEntry[T] {
	if b.entries == nil {
		return nil
	}
	out := make([]BreakdownEntry[T], 0, b.entries.Len())
	for pair := b.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, BreakdownEntry[T]{Key: pair.Key, Value: pair.Value})
	}
	return out
}

// Head returns at most n entries in source order. It does not rank.
func (b Breakdown[T]) Head(n int) []BreakdownEntry[T] {
	entries := b.Entries()
	if n < len(entries) {
		return entries[:n]
	}
	return entries
}

func (b Breakdown[T]) MarshalJSON() ([]byte, error) {
	if b.entries == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b.entries)
}

func (b *Breakdown[T]) UnmarshalJSON(data []byte) error {
	entries := orderedmap.New[string, T]()
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		b.entries = entries
		return nil
	}
	if err := json.Unmarshal(trimmed, entries); err != nil {
		return fmt.Errorf("failed to decode breakdown: %w", err)
	}
	b.entries = entries
	return nil
}
