package entity

import "fmt"

// Relation names a set-valued association between actors and a brand.
type Relation string

const (
	RelationFollower Relation = "follower"
	RelationLiker    Relation = "liker"
)

// ParseRelation validates a relation name.
func ParseRelation(s string) (Relation, error) {
	switch Relation(s) {
	case RelationFollower, RelationLiker:
		return Relation(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRelation, s)
}

// Valid reports whether r is a known relation.
func (r Relation) Valid() bool {
	return r == RelationFollower || r == RelationLiker
}

// SetField is the persisted name of the relation's member array.
func (r Relation) SetField() string {
	if r == RelationLiker {
		return "likes"
	}
	return "followers"
}

// CountField is the persisted name of the relation's denormalized count.
func (r Relation) CountField() string {
	if r == RelationLiker {
		return "like_count"
	}
	return "follower_count"
}

// MembershipChange is the single mutation a toggle commits: add or remove ActorID
// from the relation set and move the paired count by one in the same direction.
type MembershipChange struct {
	Relation Relation
	ActorID  string
	Add      bool
}

// Delta is the count adjustment paired with the set mutation.
func (c MembershipChange) Delta() int {
	if c.Add {
		return 1
	}
	return -1
}
