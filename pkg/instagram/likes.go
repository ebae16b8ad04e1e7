package instagram

import (
	"context"

	"instakit/pkg/models"
)

// Likes lists the users who liked a media item.
func (c *Client) Likes(ctx context.Context, mediaID string) ([]models.Like, error) {
	resp, err := do[models.List[models.Like]](ctx, c, epLikes, uriVars{"media_id": mediaID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// Like marks a media item as liked by the authenticated user.
func (c *Client) Like(ctx context.Context, mediaID string) error {
	_, err := do[models.NoData](ctx, c, epLikePost, uriVars{"media_id": mediaID}, nil, nil)
	return err
}

// Unlike removes the authenticated user's like from a media item.
func (c *Client) Unlike(ctx context.Context, mediaID string) error {
	_, err := do[models.NoData](ctx, c, epLikeDelete, uriVars{"media_id": mediaID}, nil, nil)
	return err
}
