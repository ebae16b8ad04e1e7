package models

import (
	"encoding/json"
	"fmt"
)

// IncomingStatus describes what the other user does to you.
type IncomingStatus string

const (
	IncomingFollowedBy   IncomingStatus = "followed_by"
	IncomingRequestedBy  IncomingStatus = "requested_by"
	IncomingBlockedByYou IncomingStatus = "blocked_by_you"
	IncomingNone         IncomingStatus = "none"
	IncomingUnknown      IncomingStatus = "unknown"
)

func (s *IncomingStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("incoming status: %w", err)
	}
	switch IncomingStatus(raw) {
	case IncomingFollowedBy, IncomingRequestedBy, IncomingBlockedByYou, IncomingNone:
		*s = IncomingStatus(raw)
	default:
		*s = IncomingUnknown
	}
	return nil
}

// OutgoingStatus describes what you do to the other user.
type OutgoingStatus string

const (
	OutgoingFollows   OutgoingStatus = "follows"
	OutgoingRequested OutgoingStatus = "requested"
	OutgoingNone      OutgoingStatus = "none"
	OutgoingUnknown   OutgoingStatus = "unknown"
)

func (s *OutgoingStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("outgoing status: %w", err)
	}
	switch OutgoingStatus(raw) {
	case OutgoingFollows, OutgoingRequested, OutgoingNone:
		*s = OutgoingStatus(raw)
	default:
		*s = OutgoingUnknown
	}
	return nil
}

// IncomingRelationship is the other user's relationship toward the
// authenticated user.
type IncomingRelationship struct {
	Status IncomingStatus `json:"incoming_status"`
}

// OutgoingRelationship is the authenticated user's relationship toward
// another user.
type OutgoingRelationship struct {
	Status              OutgoingStatus `json:"outgoing_status"`
	TargetUserIsPrivate bool           `json:"target_user_is_private"`
}
