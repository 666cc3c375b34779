package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationEventType string
type RecipientRole string

const (
	EventBOLSubmitted     NotificationEventType = "bol_submitted"
	EventBOLApproved      NotificationEventType = "bol_approved"
	EventBOLRejected      NotificationEventType = "bol_rejected"
	EventInvoiceGenerated NotificationEventType = "invoice_generated"

	RecipientRoleDriver  RecipientRole = "driver"
	RecipientRoleBroker  RecipientRole = "broker"
	RecipientRoleShipper RecipientRole = "shipper"
)

// NotificationEvent is the signal produced by a BOL lifecycle transition.
// Delivery is fire-and-forget; failure never rolls back the transition.
type NotificationEvent struct {
	Type           NotificationEventType
	SubmissionID   primitive.ObjectID
	LoadID         string
	RecipientRole  RecipientRole
	RecipientID    string
	RecipientPhone string
	Message        string
}

// NotificationRecord is the append-only trace of an emitted event.
type NotificationRecord struct {
	ID             primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	RecipientRole  RecipientRole         `json:"recipient_role" bson:"recipient_role"`
	RecipientID    string                `json:"recipient_id" bson:"recipient_id"`
	RecipientPhone string                `json:"recipient_phone,omitempty" bson:"recipient_phone,omitempty"`
	SubmissionID   primitive.ObjectID    `json:"submission_id" bson:"submission_id"`
	LoadID         string                `json:"load_id" bson:"load_id"`
	EventType      NotificationEventType `json:"event_type" bson:"event_type"`
	Message        string                `json:"message" bson:"message"`
	Channel        string                `json:"channel" bson:"channel"`
	CreatedAt      time.Time             `json:"created_at" bson:"created_at"`
}
