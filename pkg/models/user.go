package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// User is an Instagram account. Counts are only present on full
// profile responses; embedded user records (comment authors, tagged
// users) omit them.
type User struct {
	ID                string
	Username          string
	FullName          string
	ProfilePictureURL string
	Bio               string
	WebsiteURL        string
	MediaCount        *int
	FollowingCount    *int
	FollowersCount    *int
}

func (u *User) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID             *string `json:"id"`
		Username       *string `json:"username"`
		FullName       *string `json:"full_name"`
		ProfilePicture *string `json:"profile_picture"`
		Bio            string  `json:"bio"`
		Website        string  `json:"website"`
		Counts         *struct {
			Media      *int `json:"media"`
			Follows    *int `json:"follows"`
			FollowedBy *int `json:"followed_by"`
		} `json:"counts"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if raw.ID == nil || raw.Username == nil || raw.FullName == nil || raw.ProfilePicture == nil {
		return errors.New("user: missing required field")
	}
	u.ID = *raw.ID
	u.Username = *raw.Username
	u.FullName = *raw.FullName
	u.ProfilePictureURL = *raw.ProfilePicture
	u.Bio = raw.Bio
	u.WebsiteURL = raw.Website
	if raw.Counts != nil {
		u.MediaCount = raw.Counts.Media
		u.FollowingCount = raw.Counts.Follows
		u.FollowersCount = raw.Counts.FollowedBy
	}
	return nil
}

// Like is an entry in a media's likers list: a slim user record without
// profile counts.
type Like struct {
	ID                string
	Username          string
	FullName          string
	ProfilePictureURL string
}

func (l *Like) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID             *string `json:"id"`
		Username       *string `json:"username"`
		FullName       *string `json:"full_name"`
		ProfilePicture string  `json:"profile_picture"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("like: %w", err)
	}
	if raw.ID == nil || raw.Username == nil || raw.FullName == nil {
		return errors.New("like: missing required field")
	}
	l.ID = *raw.ID
	l.Username = *raw.Username
	l.FullName = *raw.FullName
	l.ProfilePictureURL = raw.ProfilePicture
	return nil
}
