package instagram

import (
	"context"

	"instakit/pkg/models"
)

// Comments lists the comments on a media item.
func (c *Client) Comments(ctx context.Context, mediaID string) ([]models.Comment, error) {
	resp, err := do[models.List[models.Comment]](ctx, c, epComments, uriVars{"media_id": mediaID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// PostComment creates a comment on a media item.
func (c *Client) PostComment(ctx context.Context, mediaID, text string) error {
	_, err := do[models.NoData](ctx, c, epCommentPost, uriVars{"media_id": mediaID}, Params{paramCommentText: text}, nil)
	return err
}

// DeleteComment removes a comment the authenticated user owns, or any
// comment on the authenticated user's own media.
func (c *Client) DeleteComment(ctx context.Context, mediaID, commentID string) error {
	_, err := do[models.NoData](ctx, c, epCommentDelete, uriVars{"media_id": mediaID, "comment_id": commentID}, nil, nil)
	return err
}
