package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EmbedMedia is the oEmbed representation of a post. It arrives as a
// bare payload with no envelope, unlike every other endpoint family.
type EmbedMedia struct {
	ID              string
	AuthorID        int
	AuthorName      string
	AuthorURL       string
	Width           int
	Height          *int
	HTML            string
	ProviderName    string
	ProviderURL     string
	Title           string
	Type            string
	ThumbnailURL    string
	ThumbnailWidth  int
	ThumbnailHeight int
	Version         string
}

// Equal compares embeds by the media they reference.
func (e EmbedMedia) Equal(other EmbedMedia) bool {
	return e.ID == other.ID
}

func (e *EmbedMedia) UnmarshalJSON(b []byte) error {
	var raw struct {
		MediaID         *string `json:"media_id"`
		AuthorID        *int    `json:"author_id"`
		AuthorName      *string `json:"author_name"`
		AuthorURL       *string `json:"author_url"`
		Width           *int    `json:"width"`
		Height          *int    `json:"height"`
		HTML            *string `json:"html"`
		ProviderName    *string `json:"provider_name"`
		ProviderURL     *string `json:"provider_url"`
		Title           string  `json:"title"`
		Type            *string `json:"type"`
		ThumbnailURL    *string `json:"thumbnail_url"`
		ThumbnailWidth  *int    `json:"thumbnail_width"`
		ThumbnailHeight *int    `json:"thumbnail_height"`
		Version         *string `json:"version"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("embed media: %w", err)
	}
	if raw.MediaID == nil || raw.AuthorID == nil || raw.AuthorName == nil || raw.AuthorURL == nil ||
		raw.Width == nil || raw.HTML == nil || raw.ProviderName == nil || raw.ProviderURL == nil ||
		raw.Type == nil || raw.ThumbnailURL == nil || raw.ThumbnailWidth == nil ||
		raw.ThumbnailHeight == nil || raw.Version == nil {
		return errors.New("embed media: missing required field")
	}
	e.ID = *raw.MediaID
	e.AuthorID = *raw.AuthorID
	e.AuthorName = *raw.AuthorName
	e.AuthorURL = *raw.AuthorURL
	e.Width = *raw.Width
	e.Height = raw.Height
	e.HTML = *raw.HTML
	e.ProviderName = *raw.ProviderName
	e.ProviderURL = *raw.ProviderURL
	e.Title = raw.Title
	e.Type = *raw.Type
	e.ThumbnailURL = *raw.ThumbnailURL
	e.ThumbnailWidth = *raw.ThumbnailWidth
	e.ThumbnailHeight = *raw.ThumbnailHeight
	e.Version = *raw.Version
	return nil
}
