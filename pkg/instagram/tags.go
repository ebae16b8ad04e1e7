package instagram

import (
	"context"

	"instakit/pkg/models"
)

// Tag fetches information about a hashtag.
func (c *Client) Tag(ctx context.Context, name string) (*models.Tag, error) {
	resp, err := do[models.Tag](ctx, c, epTag, uriVars{"tag_name": name}, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// TagRecentMedia lists recent media carrying a hashtag.
func (c *Client) TagRecentMedia(ctx context.Context, name string, opts *RequestOptions) ([]models.Media, error) {
	resp, err := do[models.List[models.Media]](ctx, c, epTagMedia, uriVars{"tag_name": name}, nil, opts)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// SearchTags finds hashtags by name.
func (c *Client) SearchTags(ctx context.Context, query string, opts *RequestOptions) ([]models.Tag, error) {
	resp, err := do[models.List[models.Tag]](ctx, c, epTagSearch, nil, Params{paramSearchQuery: query}, opts)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}
