package mongodb

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/classbrand/brandnet/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"write conflict", mongo.CommandError{Code: writeConflictCode, Name: "WriteConflict"}, entity.ErrConflict},
		{"write conflict inside write exception", mongo.WriteException{
			WriteErrors: mongo.WriteErrors{{Code: writeConflictCode, Message: "WriteConflict"}},
		}, entity.ErrConflict},
		{"transient transaction label", mongo.WriteException{Labels: []string{labelTransientTransaction}}, entity.ErrConflict},
		{"transient label on command error", mongo.CommandError{Code: 251, Labels: []string{labelTransientTransaction}}, entity.ErrConflict},
		{"wrapped write conflict", fmt.Errorf("failed to update followers: %w", mongo.CommandError{Code: writeConflictCode}), entity.ErrConflict},
		{"other server error", mongo.CommandError{Code: 11600, Name: "InterruptedAtShutdown"}, entity.ErrStoreUnavailable},
		{"deadline", context.DeadlineExceeded, entity.ErrStoreUnavailable},
		{"network", errors.New("connection reset by peer"), entity.ErrStoreUnavailable},
		{"not found passes through", entity.ErrBrandNotFound, entity.ErrBrandNotFound},
		{"self relation passes through", entity.ErrSelfRelation, entity.ErrSelfRelation},
		{"staged conflict passes through", fmt.Errorf("membership changed: %w", entity.ErrConflict), entity.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			if tt.want != entity.ErrConflict {
				assert.NotErrorIs(t, got, entity.ErrConflict)
			}
		})
	}
	assert.NoError(t, classifyError(nil))
}

func TestClassifyError_UnknownCommitResultIsNotAConflict(t *testing.T) {
	err := mongo.CommandError{Code: 50, Labels: []string{labelUnknownCommitResult}}
	assert.ErrorIs(t, classifyError(err), entity.ErrStoreUnavailable)
}

func TestApplyMembershipChange(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("add pins absence and pairs addToSet with inc", func(mt *mtest.T) {
		tx := &brandTx{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := tx.ApplyMembershipChange(context.Background(), "b1", entity.MembershipChange{
			Relation: entity.RelationFollower, ActorID: "u1", Add: true,
		})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		stmt := started.Command.Lookup("updates", "0").Document()
		assert.Equal(mt, "b1", stmt.Lookup("q", "_id").StringValue())
		assert.Equal(mt, "u1", stmt.Lookup("q", "followers", "$ne").StringValue())
		assert.Equal(mt, "u1", stmt.Lookup("u", "$addToSet", "followers").StringValue())
		assert.EqualValues(mt, 1, stmt.Lookup("u", "$inc", "follower_count").AsInt64())
	})

	mt.Run("remove pins membership and pairs pull with inc", func(mt *mtest.T) {
		tx := &brandTx{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := tx.ApplyMembershipChange(context.Background(), "b1", entity.MembershipChange{
			Relation: entity.RelationLiker, ActorID: "u1",
		})
		require.NoError(mt, err)

		stmt := mt.GetStartedEvent().Command.Lookup("updates", "0").Document()
		assert.Equal(mt, "u1", stmt.Lookup("q", "likes").StringValue())
		assert.Equal(mt, "u1", stmt.Lookup("u", "$pull", "likes").StringValue())
		assert.EqualValues(mt, -1, stmt.Lookup("u", "$inc", "like_count").AsInt64())
	})

	mt.Run("no matched document is a conflict", func(mt *mtest.T) {
		tx := &brandTx{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := tx.ApplyMembershipChange(context.Background(), "b1", entity.MembershipChange{
			Relation: entity.RelationFollower, ActorID: "u1", Add: true,
		})
		assert.ErrorIs(mt, err, entity.ErrConflict)
	})

	mt.Run("server write conflict classifies as conflict", func(mt *mtest.T) {
		tx := &brandTx{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: writeConflictCode, Message: "WriteConflict",
		}))

		err := tx.ApplyMembershipChange(context.Background(), "b1", entity.MembershipChange{
			Relation: entity.RelationLiker, ActorID: "u1", Add: true,
		})
		require.Error(mt, err)
		assert.ErrorIs(mt, classifyError(err), entity.ErrConflict)
	})

	mt.Run("missing brand on read", func(mt *mtest.T) {
		tx := &brandTx{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "brandnet.brands", mtest.FirstBatch))

		_, err := tx.GetBrand(context.Background(), "missing")
		assert.ErrorIs(mt, err, entity.ErrBrandNotFound)
	})

	mt.Run("read fills missing relation fields", func(mt *mtest.T) {
		tx := &brandTx{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "brandnet.brands", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "b1"},
			{Key: "owner_id", Value: "owner-1"},
			{Key: "brand_name", Value: "Campus Coffee"},
		}))

		brand, err := tx.GetBrand(context.Background(), "b1")
		require.NoError(mt, err)
		assert.Equal(mt, []string{}, brand.Followers)
		assert.Equal(mt, []string{}, brand.Likers)
		assert.Zero(mt, brand.LikeCount)
		assert.Equal(mt, entity.DefaultCategory, brand.Category)
	})
}
