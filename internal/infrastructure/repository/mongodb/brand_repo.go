package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/classbrand/brandnet/internal/domain/contract"
	"github.com/classbrand/brandnet/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	// writeConflictCode is the server error code for a WriteConflict.
	writeConflictCode = 112
	// maxCommitAttempts bounds retries of a commit whose outcome is unknown.
	maxCommitAttempts = 3

	labelTransientTransaction = "TransientTransactionError"
	labelUnknownCommitResult  = "UnknownTransactionCommitResult"
)

// BrandRepository represents the MongoDB implementation of IBrandRepository and IMembershipStore.
type BrandRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	txTimeout  time.Duration
}

// NewBrandRepository creates and returns a new BrandRepository instance.
func NewBrandRepository(client *mongo.Client, db *mongo.Database, txTimeout time.Duration) *BrandRepository {
	if txTimeout <= 0 {
		txTimeout = 10 * time.Second
	}
	return &BrandRepository{
		client:     client,
		collection: db.Collection("brands"),
		txTimeout:  txTimeout,
	}
}

var (
	_ contract.IBrandRepository = (*BrandRepository)(nil)
	_ contract.IMembershipStore = (*BrandRepository)(nil)
)

// RunInTransaction executes fn inside a snapshot transaction and commits it.
// The transaction is detached from the caller's cancellation: once submitted it
// completes or fails on its own deadline.
func (r *BrandRepository) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx contract.IBrandTx) error) error {
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.txTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return classifyError(err)
	}
	defer session.EndSession(txCtx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())
	if err := session.StartTransaction(txOpts); err != nil {
		return classifyError(err)
	}

	sc := mongo.NewSessionContext(txCtx, session)
	if err := fn(sc, &brandTx{collection: r.collection}); err != nil {
		_ = session.AbortTransaction(txCtx)
		return classifyError(err)
	}
	return r.commit(sc, session)
}

// commit retries only the commit command when the server reports an unknown
// result. Re-running the whole toggle there could apply it twice.
func (r *BrandRepository) commit(ctx context.Context, session mongo.Session) error {
	var err error
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		err = session.CommitTransaction(ctx)
		if err == nil {
			return nil
		}
		var labeled mongo.LabeledError
		if !errors.As(err, &labeled) || !labeled.HasErrorLabel(labelUnknownCommitResult) || ctx.Err() != nil {
			return classifyError(err)
		}
	}
	return fmt.Errorf("%w: commit result unknown: %v", entity.ErrStoreUnavailable, err)
}

// classifyError maps driver errors onto the store error taxonomy.
func classifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrBrandNotFound),
		errors.Is(err, entity.ErrSelfRelation),
		errors.Is(err, entity.ErrConflict),
		errors.Is(err, entity.ErrStoreUnavailable),
		errors.Is(err, entity.ErrInvalidRelation):
		return err
	case isConflict(err):
		return fmt.Errorf("%w: %v", entity.ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
}

func isConflict(err error) bool {
	var labeled mongo.LabeledError
	if errors.As(err, &labeled) && labeled.HasErrorLabel(labelTransientTransaction) {
		return true
	}
	var serverErr mongo.ServerError
	return errors.As(err, &serverErr) && serverErr.HasErrorCode(writeConflictCode)
}

// brandTx issues reads and writes bound to the transaction's session context.
type brandTx struct {
	collection *mongo.Collection
}

func (t *brandTx) GetBrand(ctx context.Context, brandID string) (*entity.Brand, error) {
	var brand entity.Brand
	if err := t.collection.FindOne(ctx, bson.M{"_id": brandID}).Decode(&brand); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to read brand %s: %w", brandID, err)
	}
	brand.ApplyDefaults()
	return &brand, nil
}

// ApplyMembershipChange issues a single conditional update: the filter pins the
// membership the transaction observed, $addToSet/$pull mutate the set and $inc
// moves the count, so both fields change together or not at all.
func (t *brandTx) ApplyMembershipChange(ctx context.Context, brandID string, change entity.MembershipChange) error {
	setField := change.Relation.SetField()
	filter := bson.M{"_id": brandID}
	update := bson.M{
		"$inc": bson.M{change.Relation.CountField(): change.Delta()},
		"$set": bson.M{"updated_at": time.Now()},
	}
	if change.Add {
		filter[setField] = bson.M{"$ne": change.ActorID}
		update["$addToSet"] = bson.M{setField: change.ActorID}
	} else {
		filter[setField] = change.ActorID
		update["$pull"] = bson.M{setField: change.ActorID}
	}

	res, err := t.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update %s of brand %s: %w", setField, brandID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("membership of brand %s changed before update: %w", brandID, entity.ErrConflict)
	}
	return nil
}

// CreateBrand inserts a new brand record into the database.
func (r *BrandRepository) CreateBrand(ctx context.Context, brand *entity.Brand) error {
	brand.ApplyDefaults()
	if _, err := r.collection.InsertOne(ctx, brand); err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// GetBrandByID retrieves a single brand by its ID.
func (r *BrandRepository) GetBrandByID(ctx context.Context, brandID string) (*entity.Brand, error) {
	var brand entity.Brand
	err := r.collection.FindOne(ctx, bson.M{"_id": brandID}).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand by ID: %w", err)
	}
	brand.ApplyDefaults()
	return &brand, nil
}

// UpdateBrand applies a $set of profile fields.
func (r *BrandRepository) UpdateBrand(ctx context.Context, brandID string, updates map[string]interface{}) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": brandID}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrBrandNotFound
	}
	return nil
}

// DeleteBrand removes a brand document.
func (r *BrandRepository) DeleteBrand(ctx context.Context, brandID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": brandID})
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrBrandNotFound
	}
	return nil
}

// ListBrands retrieves one page of brands, newest first.
func (r *BrandRepository) ListBrands(ctx context.Context, page, pageSize int) ([]*entity.Brand, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	brands, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

// ListBrandsByOwner retrieves all brands created by ownerID.
func (r *BrandRepository) ListBrandsByOwner(ctx context.Context, ownerID string) ([]*entity.Brand, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"owner_id": ownerID}, opts)
}

func (r *BrandRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Brand, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find brands: %w", err)
	}
	defer cursor.Close(ctx)

	brands := []*entity.Brand{}
	for cursor.Next(ctx) {
		var brand entity.Brand
		if err := cursor.Decode(&brand); err != nil {
			return nil, fmt.Errorf("failed to decode brand: %w", err)
		}
		brand.ApplyDefaults()
		brands = append(brands, &brand)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return brands, nil
}

// DeleteBrandsByOwner removes every brand owned by ownerID.
func (r *BrandRepository) DeleteBrandsByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete brands of owner %s: %w", ownerID, err)
	}
	return res.DeletedCount, nil
}

// AggregateCounts returns the number of brands and the sums of their counters.
func (r *BrandRepository) AggregateCounts(ctx context.Context) (brands, likes, followers int64, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "brands", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "likes", Value: bson.D{{Key: "$sum", Value: "$like_count"}}},
			{Key: "followers", Value: bson.D{{Key: "$sum", Value: "$follower_count"}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to aggregate brand counts: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Brands    int64 `bson:"brands"`
		Likes     int64 `bson:"likes"`
		Followers int64 `bson:"followers"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, 0, fmt.Errorf("failed to decode brand counts: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, 0, 0, fmt.Errorf("cursor error: %w", err)
	}
	return result.Brands, result.Likes, result.Followers, nil
}

// EnsureIndexes creates the owner and recency indexes used by the list queries.
func (r *BrandRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}
