package entity

import "time"

// MembershipEvent is published after a toggle commits.
type MembershipEvent struct {
	BrandID   string    `json:"brand_id"`
	ActorID   string    `json:"actor_id"`
	Relation  Relation  `json:"relation"`
	IsMember  bool      `json:"is_member"`
	Timestamp time.Time `json:"timestamp"`
}

// Subject returns the broker subject for the event, e.g. "brand.followed".
func (e MembershipEvent) Subject() string {
	switch {
	case e.Relation == RelationLiker && e.IsMember:
		return "brand.liked"
	case e.Relation == RelationLiker:
		return "brand.unliked"
	case e.IsMember:
		return "brand.followed"
	default:
		return "brand.unfollowed"
	}
}
