package instagram

import (
	"context"

	"instakit/pkg/models"
)

// Relationship actions accepted by the relationship endpoint.
const (
	actionFollow   = "follow"
	actionUnfollow = "unfollow"
	actionApprove  = "approve"
	actionIgnore   = "ignore"
)

// MyFollows lists the users the authenticated user follows.
func (c *Client) MyFollows(ctx context.Context) ([]models.User, error) {
	resp, err := do[models.List[models.User]](ctx, c, epMyFollows, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// MyFollowers lists the users following the authenticated user.
func (c *Client) MyFollowers(ctx context.Context) ([]models.User, error) {
	resp, err := do[models.List[models.User]](ctx, c, epMyFollowers, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// MyRequests lists the users whose follow requests await the
// authenticated user's decision.
func (c *Client) MyRequests(ctx context.Context) ([]models.User, error) {
	resp, err := do[models.List[models.User]](ctx, c, epMyRequests, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// Relationship fetches the authenticated user's relationship to another
// user.
func (c *Client) Relationship(ctx context.Context, userID string) (*models.IncomingRelationship, error) {
	resp, err := do[models.IncomingRelationship](ctx, c, epRelationship, uriVars{"user_id": userID}, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Follow requests to follow a user. Private targets move to the
// requested state rather than follows.
func (c *Client) Follow(ctx context.Context, userID string) (*models.OutgoingRelationship, error) {
	return c.setRelationshipOutgoing(ctx, userID, actionFollow)
}

// Unfollow stops following a user.
func (c *Client) Unfollow(ctx context.Context, userID string) (*models.OutgoingRelationship, error) {
	return c.setRelationshipOutgoing(ctx, userID, actionUnfollow)
}

// Approve accepts a pending follow request from a user.
func (c *Client) Approve(ctx context.Context, userID string) (*models.IncomingRelationship, error) {
	return c.setRelationshipIncoming(ctx, userID, actionApprove)
}

// Ignore declines a pending follow request from a user.
func (c *Client) Ignore(ctx context.Context, userID string) (*models.IncomingRelationship, error) {
	return c.setRelationshipIncoming(ctx, userID, actionIgnore)
}

func (c *Client) setRelationshipOutgoing(ctx context.Context, userID, action string) (*models.OutgoingRelationship, error) {
	resp, err := do[models.OutgoingRelationship](ctx, c, epRelationshipSet, uriVars{"user_id": userID}, Params{paramAction: action}, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) setRelationshipIncoming(ctx context.Context, userID, action string) (*models.IncomingRelationship, error) {
	resp, err := do[models.IncomingRelationship](ctx, c, epRelationshipSet, uriVars{"user_id": userID}, Params{paramAction: action}, nil)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
