package instagram

import (
	"context"

	"instakit/pkg/models"
)

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	resp, err := do[models.User](ctx, c, epUsersSelf, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// User fetches a user's profile by ID.
func (c *Client) User(ctx context.Context, userID string) (*models.User, error) {
	resp, err := do[models.User](ctx, c, epUser, uriVars{"user_id": userID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// MyRecentMedia lists the authenticated user's most recent media.
func (c *Client) MyRecentMedia(ctx context.Context, opts *RequestOptions) ([]models.Media, error) {
	resp, err := do[models.List[models.Media]](ctx, c, epUsersSelfMedia, nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// UserRecentMedia lists a user's most recent media.
func (c *Client) UserRecentMedia(ctx context.Context, userID string, opts *RequestOptions) ([]models.Media, error) {
	resp, err := do[models.List[models.Media]](ctx, c, epUserMedia, uriVars{"user_id": userID}, nil, opts)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// MyLikedMedia lists media the authenticated user has liked.
func (c *Client) MyLikedMedia(ctx context.Context, opts *RequestOptions) ([]models.Media, error) {
	resp, err := do[models.List[models.Media]](ctx, c, epUsersSelfLiked, nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// SearchUsers finds users by name.
func (c *Client) SearchUsers(ctx context.Context, query string, opts *RequestOptions) ([]models.User, error) {
	resp, err := do[models.List[models.User]](ctx, c, epUserSearch, nil, Params{paramSearchQuery: query}, opts)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}
