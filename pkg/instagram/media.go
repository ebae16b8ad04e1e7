package instagram

import (
	"context"

	"instakit/pkg/models"
)

// Media fetches a single media item by ID.
func (c *Client) Media(ctx context.Context, mediaID string) (*models.Media, error) {
	resp, err := do[models.Media](ctx, c, epMedia, uriVars{"media_id": mediaID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// MediaByShortcode fetches a single media item by its URL shortcode.
func (c *Client) MediaByShortcode(ctx context.Context, shortcode string) (*models.Media, error) {
	resp, err := do[models.Media](ctx, c, epMediaShortcode, uriVars{"shortcode": shortcode}, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// SearchMedia finds media taken near a coordinate. distanceMeters
// bounds the search radius; zero leaves the server default in place.
func (c *Client) SearchMedia(ctx context.Context, latitude, longitude, distanceMeters float64) ([]models.Media, error) {
	params := Params{paramLatitude: latitude, paramLongitude: longitude}
	if distanceMeters > 0 {
		params[paramDistance] = distanceMeters
	}
	resp, err := do[models.List[models.Media]](ctx, c, epMediaSearch, nil, params, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}
