package mongodb

import (
	"context"
	"fmt"
	"time"

	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/services"
	"fleetflow/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bolRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewBOLRepository(db *mongo.Database, cache services.CacheService) interfaces.BOLRepository {
	return &bolRepository{
		collection: db.Collection("bol_submissions"),
		cache:      cache,
	}
}

func (r *bolRepository) Create(ctx context.Context, submission *models.BOLSubmission) error {
	submission.ID = primitive.NewObjectID()
	submission.CreatedAt = time.Now()
	submission.UpdatedAt = submission.CreatedAt

	_, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return fmt.Errorf("failed to create bol submission: %w", err)
	}

	return nil
}

func (r *bolRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BOLSubmission, error) {
	// Try cache first
	if submission := r.getSubmissionFromCache(ctx, id.Hex()); submission != nil {
		return submission, nil
	}

	var submission models.BOLSubmission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Resource: "bol submission", ID: id.Hex()}
		}
		return nil, fmt.Errorf("failed to get bol submission: %w", err)
	}

	// Only terminal submissions are safe to cache; pending and approved
	// ones are still moving through review.
	if submission.Status.Terminal() {
		r.cacheSubmission(ctx, &submission)
	}

	return &submission, nil
}

func (r *bolRepository) GetByLoadID(ctx context.Context, loadID string) (*models.BOLSubmission, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var submission models.BOLSubmission
	err := r.collection.FindOne(ctx, bson.M{"load_id": loadID}, opts).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Resource: "bol submission", ID: loadID}
		}
		return nil, fmt.Errorf("failed to get bol submission by load: %w", err)
	}

	return &submission, nil
}

func (r *bolRepository) List(ctx context.Context, filter *interfaces.BOLFilter, params *utils.PaginationParams) ([]*models.BOLSubmission, int64, error) {
	query := bson.M{}
	if filter != nil {
		if filter.BrokerID != "" {
			query["broker_id"] = filter.BrokerID
		}
		if filter.DriverID != "" {
			query["driver_id"] = filter.DriverID
		}
		if filter.LoadID != "" {
			query["load_id"] = filter.LoadID
		}
		if filter.Status != "" {
			query["status"] = filter.Status
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bol submissions: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bol submissions: %w", err)
	}
	defer cursor.Close(ctx)

	var submissions []*models.BOLSubmission
	for cursor.Next(ctx) {
		var submission models.BOLSubmission
		if err := cursor.Decode(&submission); err != nil {
			return nil, 0, fmt.Errorf("failed to decode bol submission: %w", err)
		}
		submissions = append(submissions, &submission)
	}

	return submissions, total, nil
}

func (r *bolRepository) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.BOLStatus, updates map[string]interface{}) (*models.BOLSubmission, error) {
	set := bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}
	for field, value := range updates {
		set[field] = value
	}

	// The status guard in the filter makes the transition a compare and
	// swap. Concurrent reviewers race on the same document and exactly
	// one of them matches.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.BOLSubmission
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)

	if err == nil {
		r.invalidateSubmissionCache(ctx, id.Hex())
		if updated.Status.Terminal() {
			r.cacheSubmission(ctx, &updated)
		}
		return &updated, nil
	}

	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to transition bol submission: %w", err)
	}

	// No match means either the document is gone or another transition
	// won. Re-read to report which.
	var current models.BOLSubmission
	err = r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&current)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Resource: "bol submission", ID: id.Hex()}
		}
		return nil, fmt.Errorf("failed to get bol submission after transition miss: %w", err)
	}

	return nil, &models.InvalidStateError{
		SubmissionID: id.Hex(),
		Status:       current.Status,
		Transition:   string(to),
	}
}

// Cache operations
func (r *bolRepository) cacheSubmission(ctx context.Context, submission *models.BOLSubmission) {
	if r.cache != nil && submission.Status.Terminal() {
		cacheKey := utils.CacheSubmissionPrefix + submission.ID.Hex()
		r.cache.Set(ctx, cacheKey, submission, utils.SubmissionCacheTTL)
	}
}

func (r *bolRepository) getSubmissionFromCache(ctx context.Context, submissionID string) *models.BOLSubmission {
	if r.cache == nil {
		return nil
	}

	var submission models.BOLSubmission
	if err := r.cache.Get(ctx, utils.CacheSubmissionPrefix+submissionID, &submission); err != nil {
		return nil
	}

	return &submission
}

func (r *bolRepository) invalidateSubmissionCache(ctx context.Context, submissionID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheSubmissionPrefix+submissionID)
	}
}
