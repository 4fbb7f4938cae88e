package entity

import (
	"slices"
	"time"
)

// DefaultCategory is applied to brands created or stored without a category.
const DefaultCategory = "Technology"

// Brand is a student brand profile that other actors follow and like.
type Brand struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	OwnerID       string    `bson:"owner_id" json:"owner_id"`
	Name          string    `bson:"brand_name" json:"brand_name"`
	Description   string    `bson:"description" json:"description"`
	Category      string    `bson:"category" json:"category"`
	InstagramURL  string    `bson:"instagram_url" json:"instagram_url"`
	FacebookURL   string    `bson:"facebook_url" json:"facebook_url"`
	Followers     []string  `bson:"followers" json:"followers"`
	FollowerCount int       `bson:"follower_count" json:"follower_count"`
	Likers        []string  `bson:"likes" json:"likes"`
	LikeCount     int       `bson:"like_count" json:"like_count"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// ApplyDefaults fills fields that older documents may lack. Absent relation sets
// are treated as empty rather than as a schema violation.
func (b *Brand) ApplyDefaults() {
	if b.Followers == nil {
		b.Followers = []string{}
	}
	if b.Likers == nil {
		b.Likers = []string{}
	}
	if b.Category == "" {
		b.Category = DefaultCategory
	}
}

// Members returns the member set of the given relation.
func (b *Brand) Members(r Relation) []string {
	if r == RelationLiker {
		return b.Likers
	}
	return b.Followers
}

// Count returns the denormalized count of the given relation.
func (b *Brand) Count(r Relation) int {
	if r == RelationLiker {
		return b.LikeCount
	}
	return b.FollowerCount
}

// HasMember reports whether actorID belongs to the relation set.
func (b *Brand) HasMember(r Relation, actorID string) bool {
	return slices.Contains(b.Members(r), actorID)
}

// Apply mutates the in-memory brand the way the store applies a committed change:
// set-union or set-remove plus a paired increment.
func (b *Brand) Apply(c MembershipChange) {
	members := b.Members(c.Relation)
	if c.Add {
		if !slices.Contains(members, c.ActorID) {
			members = append(members, c.ActorID)
		}
	} else {
		members = slices.DeleteFunc(slices.Clone(members), func(m string) bool { return m == c.ActorID })
	}
	if c.Relation == RelationLiker {
		b.Likers = members
		b.LikeCount += c.Delta()
	} else {
		b.Followers = members
		b.FollowerCount += c.Delta()
	}
}

// BrandStats aggregates the admin dashboard counters.
type BrandStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalBrands    int64 `json:"total_brands"`
	TotalLikes     int64 `json:"total_likes"`
	TotalFollowers int64 `json:"total_followers"`
}
