// Package models contains the typed records produced by decoding
// Instagram API payloads. Decoding policy: required fields missing or
// mistyped fail the entire entity, optional fields decode to their zero
// value, and enum-like strings that don't match a known value map to an
// explicit Unknown variant so new server-side values never break
// decoding.
package models

import (
	"encoding/json"
	"fmt"
)

// List is a decoded collection of entities. The API returns bare JSON
// arrays under the envelope's data key; any element that fails to
// decode fails the whole list.
type List[T any] struct {
	Items []T
}

func (l *List[T]) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	items := make([]T, 0, len(raw))
	for i, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			return fmt.Errorf("list: item %d: %w", i, err)
		}
		items = append(items, item)
	}
	l.Items = items
	return nil
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	if l.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Items)
}

// NoData is the response type for endpoints that return only metadata,
// such as posting a comment or liking media.
type NoData struct{}

func (NoData) UnmarshalJSON([]byte) error { return nil }
