package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MediaType discriminates images from videos. Unrecognized provider
// values decode to MediaTypeUnknown rather than failing.
type MediaType string

const (
	MediaTypeImage   MediaType = "image"
	MediaTypeVideo   MediaType = "video"
	MediaTypeUnknown MediaType = "unknown"
)

func (t *MediaType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("media type: %w", err)
	}
	switch MediaType(s) {
	case MediaTypeImage, MediaTypeVideo:
		*t = MediaType(s)
	default:
		*t = MediaTypeUnknown
	}
	return nil
}

// RenditionSize names a size variant of a media asset.
type RenditionSize string

const (
	RenditionThumbnail RenditionSize = "thumbnail"
	RenditionLowRes    RenditionSize = "low_resolution"
	RenditionStandard  RenditionSize = "standard_resolution"
)

// Rendition is one size/URL variant of a media asset.
type Rendition struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

// Point is a normalized position within a photo, used for user tags.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UserTag marks a user at a position in a photo.
type UserTag struct {
	Position Point `json:"position"`
	User     User  `json:"user"`
}

// Media is a single Instagram post.
type Media struct {
	ID            string
	User          User
	Type          MediaType
	Images        map[RenditionSize]Rendition
	Videos        map[RenditionSize]Rendition
	Caption       *Caption
	UserHasLiked  bool
	CreationDate  UnixTime
	URL           string
	LikesCount    int
	CommentsCount int
	UsersInPhoto  []UserTag
	FilterName    string
	Location      *Location
	Tags          []string
}

// Equal compares media by identity; two posts are the same post when
// their IDs match, regardless of rendition or count drift.
func (m Media) Equal(other Media) bool {
	return m.ID == other.ID
}

func (m *Media) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID           *string                     `json:"id"`
		User         *User                       `json:"user"`
		Type         *MediaType                  `json:"type"`
		Images       map[RenditionSize]Rendition `json:"images"`
		Videos       map[RenditionSize]Rendition `json:"videos"`
		Caption      *Caption                    `json:"caption"`
		UserHasLiked *bool                       `json:"user_has_liked"`
		CreatedTime  *UnixTime                   `json:"created_time"`
		Link         *string                     `json:"link"`
		Likes        *struct {
			Count int `json:"count"`
		} `json:"likes"`
		Comments *struct {
			Count int `json:"count"`
		} `json:"comments"`
		UsersInPhoto []UserTag `json:"users_in_photo"`
		Filter       *string   `json:"filter"`
		Location     *Location `json:"location"`
		Tags         []string  `json:"tags"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("media: %w", err)
	}
	if raw.ID == nil || raw.User == nil || raw.Type == nil || raw.UserHasLiked == nil ||
		raw.CreatedTime == nil || raw.Link == nil || raw.Likes == nil || raw.Comments == nil ||
		raw.Filter == nil || raw.Tags == nil {
		return errors.New("media: missing required field")
	}
	m.ID = *raw.ID
	m.User = *raw.User
	m.Type = *raw.Type
	m.Images = raw.Images
	m.Videos = raw.Videos
	m.Caption = raw.Caption
	m.UserHasLiked = *raw.UserHasLiked
	m.CreationDate = *raw.CreatedTime
	m.URL = *raw.Link
	m.LikesCount = raw.Likes.Count
	m.CommentsCount = raw.Comments.Count
	m.UsersInPhoto = raw.UsersInPhoto
	m.FilterName = *raw.Filter
	m.Location = raw.Location
	m.Tags = raw.Tags
	return nil
}

// Caption is the text block attached to media, authored by a user.
type Caption struct {
	ID           string
	CreationDate UnixTime
	Text         string
	Creator      User
}

func (c *Caption) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID          *string   `json:"id"`
		CreatedTime *UnixTime `json:"created_time"`
		Text        *string   `json:"text"`
		From        *User     `json:"from"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("caption: %w", err)
	}
	if raw.ID == nil || raw.CreatedTime == nil || raw.Text == nil || raw.From == nil {
		return errors.New("caption: missing required field")
	}
	c.ID = *raw.ID
	c.CreationDate = *raw.CreatedTime
	c.Text = *raw.Text
	c.Creator = *raw.From
	return nil
}

// Comment is a user comment on media.
type Comment struct {
	ID           string
	CreationDate UnixTime
	Text         string
	User         User
}

func (c *Comment) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID          *string   `json:"id"`
		CreatedTime *UnixTime `json:"created_time"`
		Text        *string   `json:"text"`
		From        *User     `json:"from"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("comment: %w", err)
	}
	if raw.ID == nil || raw.CreatedTime == nil || raw.Text == nil || raw.From == nil {
		return errors.New("comment: missing required field")
	}
	c.ID = *raw.ID
	c.CreationDate = *raw.CreatedTime
	c.Text = *raw.Text
	c.User = *raw.From
	return nil
}
