package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Tag is a hashtag with its media count.
type Tag struct {
	Name       string `json:"name"`
	MediaCount int    `json:"media_count"`
}

func (t *Tag) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name       *string `json:"name"`
		MediaCount *int    `json:"media_count"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("tag: %w", err)
	}
	if raw.Name == nil || raw.MediaCount == nil {
		return errors.New("tag: missing required field")
	}
	t.Name = *raw.Name
	t.MediaCount = *raw.MediaCount
	return nil
}

// Location is a named place with coordinates.
type Location struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
}

func (l *Location) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID        *json.Number `json:"id"`
		Name      *string      `json:"name"`
		Latitude  float64      `json:"latitude"`
		Longitude float64      `json:"longitude"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	if raw.ID == nil || raw.Name == nil {
		return errors.New("location: missing required field")
	}
	// The provider encodes location IDs as strings in some payloads and
	// bare numbers in others; json.Number accepts both.
	l.ID = raw.ID.String()
	l.Name = *raw.Name
	l.Latitude = raw.Latitude
	l.Longitude = raw.Longitude
	return nil
}
