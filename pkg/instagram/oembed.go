package instagram

import (
	"context"

	"instakit/pkg/models"
)

// OEmbed fetches embed markup and metadata for a media page URL. The
// endpoint answers with a bare payload rather than the usual envelope.
func (c *Client) OEmbed(ctx context.Context, mediaURL string) (*models.EmbedMedia, error) {
	resp, err := do[models.EmbedMedia](ctx, c, epOEmbed, nil, Params{paramURL: mediaURL}, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
