package instagram

import (
	"context"

	"instakit/pkg/models"
)

// Location fetches information about a location.
func (c *Client) Location(ctx context.Context, locationID string) (*models.Location, error) {
	resp, err := do[models.Location](ctx, c, epLocation, uriVars{"location_id": locationID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// LocationRecentMedia lists recent media tagged with a location.
func (c *Client) LocationRecentMedia(ctx context.Context, locationID string, opts *RequestOptions) ([]models.Media, error) {
	resp, err := do[models.List[models.Media]](ctx, c, epLocationMedia, uriVars{"location_id": locationID}, nil, opts)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// SearchLocations finds locations near a coordinate. distanceMeters
// bounds the search radius; zero leaves the server default in place.
func (c *Client) SearchLocations(ctx context.Context, latitude, longitude, distanceMeters float64) ([]models.Location, error) {
	params := Params{paramLatitude: latitude, paramLongitude: longitude}
	if distanceMeters > 0 {
		params[paramDistance] = distanceMeters
	}
	resp, err := do[models.List[models.Location]](ctx, c, epLocationSearch, nil, params, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}
