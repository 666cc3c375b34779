package mongodb

import (
	"context"
	"fmt"
	"time"

	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type notificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) interfaces.NotificationRepository {
	return &notificationRepository{
		collection: db.Collection("notifications"),
	}
}

func (r *notificationRepository) Append(ctx context.Context, record *models.NotificationRecord) error {
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to append notification record: %w", err)
	}

	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, params *utils.PaginationParams) ([]*models.NotificationRecord, int64, error) {
	filter := bson.M{"recipient_id": recipientID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.NotificationRecord
	for cursor.Next(ctx) {
		var record models.NotificationRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, 0, fmt.Errorf("failed to decode notification record: %w", err)
		}
		records = append(records, &record)
	}

	return records, total, nil
}

func (r *notificationRepository) ListBySubmission(ctx context.Context, submissionID string) ([]*models.NotificationRecord, error) {
	id, err := primitive.ObjectIDFromHex(submissionID)
	if err != nil {
		return nil, &models.ValidationError{Fields: map[string]string{"submission_id": "Invalid ID format"}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"submission_id": id}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications for submission: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.NotificationRecord
	for cursor.Next(ctx) {
		var record models.NotificationRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode notification record: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}
