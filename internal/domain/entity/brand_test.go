package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classbrand/brandnet/internal/domain/entity"
)

func TestApplyDefaults_FillsMissingFields(t *testing.T) {
	b := entity.Brand{ID: "b1"}
	b.ApplyDefaults()

	assert.NotNil(t, b.Followers)
	assert.NotNil(t, b.Likers)
	assert.Empty(t, b.Followers)
	assert.Equal(t, entity.DefaultCategory, b.Category)
	assert.Zero(t, b.LikeCount)
}

func TestApplyDefaults_KeepsExistingCategory(t *testing.T) {
	b := entity.Brand{Category: "Fashion", Likers: []string{"u1"}, LikeCount: 1}
	b.ApplyDefaults()

	assert.Equal(t, "Fashion", b.Category)
	assert.Equal(t, []string{"u1"}, b.Likers)
}

func TestApply_MovesSetAndCountTogether(t *testing.T) {
	b := entity.Brand{}
	b.ApplyDefaults()

	b.Apply(entity.MembershipChange{Relation: entity.RelationFollower, ActorID: "u1", Add: true})
	b.Apply(entity.MembershipChange{Relation: entity.RelationLiker, ActorID: "u1", Add: true})
	b.Apply(entity.MembershipChange{Relation: entity.RelationLiker, ActorID: "u2", Add: true})

	assert.Equal(t, []string{"u1"}, b.Followers)
	assert.Equal(t, 1, b.FollowerCount)
	assert.Equal(t, []string{"u1", "u2"}, b.Likers)
	assert.Equal(t, 2, b.LikeCount)

	b.Apply(entity.MembershipChange{Relation: entity.RelationLiker, ActorID: "u1"})
	assert.Equal(t, []string{"u2"}, b.Likers)
	assert.Equal(t, 1, b.LikeCount)
	assert.True(t, b.HasMember(entity.RelationFollower, "u1"))
	assert.False(t, b.HasMember(entity.RelationLiker, "u1"))
}

func TestApply_RemoveDoesNotAliasPreviousSlice(t *testing.T) {
	likers := []string{"u1", "u2"}
	b := entity.Brand{Likers: likers, LikeCount: 2}

	b.Apply(entity.MembershipChange{Relation: entity.RelationLiker, ActorID: "u1"})

	assert.Equal(t, []string{"u1", "u2"}, likers)
	assert.Equal(t, []string{"u2"}, b.Likers)
}

func TestParseRelation(t *testing.T) {
	r, err := entity.ParseRelation("liker")
	require.NoError(t, err)
	assert.Equal(t, entity.RelationLiker, r)
	assert.Equal(t, "likes", r.SetField())
	assert.Equal(t, "like_count", r.CountField())

	r, err = entity.ParseRelation("follower")
	require.NoError(t, err)
	assert.Equal(t, "followers", r.SetField())
	assert.Equal(t, "follower_count", r.CountField())

	_, err = entity.ParseRelation("subscriber")
	assert.True(t, errors.Is(err, entity.ErrInvalidRelation))
	assert.False(t, entity.Relation("").Valid())
}

func TestMembershipEventSubject(t *testing.T) {
	tests := []struct {
		relation entity.Relation
		isMember bool
		want     string
	}{
		{entity.RelationFollower, true, "brand.followed"},
		{entity.RelationFollower, false, "brand.unfollowed"},
		{entity.RelationLiker, true, "brand.liked"},
		{entity.RelationLiker, false, "brand.unliked"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			e := entity.MembershipEvent{Relation: tt.relation, IsMember: tt.isMember}
			assert.Equal(t, tt.want, e.Subject())
		})
	}
}
