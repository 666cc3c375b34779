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

type accessorialRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewAccessorialRepository(db *mongo.Database, cache services.CacheService) interfaces.AccessorialRepository {
	return &accessorialRepository{
		collection: db.Collection("accessorial_fees"),
		cache:      cache,
	}
}

func (r *accessorialRepository) Create(ctx context.Context, fee *models.AccessorialFee) error {
	fee.ID = primitive.NewObjectID()
	fee.CreatedAt = time.Now()
	fee.UpdatedAt = fee.CreatedAt

	_, err := r.collection.InsertOne(ctx, fee)
	if err != nil {
		return fmt.Errorf("failed to create accessorial fee: %w", err)
	}

	r.invalidateSummaryCache(ctx, fee.LoadID)
	return nil
}

func (r *accessorialRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AccessorialFee, error) {
	var fee models.AccessorialFee
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&fee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &models.NotFoundError{Resource: "accessorial fee", ID: id.Hex()}
		}
		return nil, fmt.Errorf("failed to get accessorial fee: %w", err)
	}

	return &fee, nil
}

func (r *accessorialRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.AccessorialFee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find accessorial fees: %w", err)
	}
	defer cursor.Close(ctx)

	var fees []*models.AccessorialFee
	for cursor.Next(ctx) {
		var fee models.AccessorialFee
		if err := cursor.Decode(&fee); err != nil {
			return nil, fmt.Errorf("failed to decode accessorial fee: %w", err)
		}
		fees = append(fees, &fee)
	}

	return fees, nil
}

func (r *accessorialRepository) ListByLoad(ctx context.Context, loadID string) ([]*models.AccessorialFee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"load_id": loadID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find accessorial fees for load: %w", err)
	}
	defer cursor.Close(ctx)

	var fees []*models.AccessorialFee
	for cursor.Next(ctx) {
		var fee models.AccessorialFee
		if err := cursor.Decode(&fee); err != nil {
			return nil, fmt.Errorf("failed to decode accessorial fee: %w", err)
		}
		fees = append(fees, &fee)
	}

	return fees, nil
}

func (r *accessorialRepository) SetApproved(ctx context.Context, id primitive.ObjectID, approvedBy, receiptNumber string, approvedAt time.Time) error {
	set := bson.M{
		"approved":    true,
		"approved_by": approvedBy,
		"approved_at": approvedAt,
		"updated_at":  time.Now(),
	}
	if receiptNumber != "" {
		set["receipt_number"] = receiptNumber
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to approve accessorial fee: %w", err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{Resource: "accessorial fee", ID: id.Hex()}
	}

	// The summary for this load is stale now.
	var fee models.AccessorialFee
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&fee); err == nil {
		r.invalidateSummaryCache(ctx, fee.LoadID)
	}

	return nil
}

func (r *accessorialRepository) invalidateSummaryCache(ctx context.Context, loadID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheSummaryPrefix+loadID)
	}
}
