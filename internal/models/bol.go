package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BOLStatus string

const (
	BOLStatusPending  BOLStatus = "pending"
	BOLStatusApproved BOLStatus = "approved"
	BOLStatusRejected BOLStatus = "rejected"
	BOLStatusInvoiced BOLStatus = "invoiced"
)

// Terminal reports whether no further transition is permitted.
func (s BOLStatus) Terminal() bool {
	return s == BOLStatusRejected || s == BOLStatusInvoiced
}

// BOLData carries the delivery confirmation details captured by the driver.
type BOLData struct {
	BOLNumber       string   `json:"bol_number" bson:"bol_number" validate:"required,max=64"`
	PRONumber       string   `json:"pro_number" bson:"pro_number" validate:"omitempty,max=64"`
	DeliveryDate    string   `json:"delivery_date" bson:"delivery_date" validate:"required"`
	DeliveryTime    string   `json:"delivery_time" bson:"delivery_time"`
	ReceiverName    string   `json:"receiver_name" bson:"receiver_name" validate:"required,max=120"`
	DriverSignature string   `json:"driver_signature" bson:"driver_signature" validate:"required"`
	SealNumber      string   `json:"seal_number" bson:"seal_number"`
	PhotoURLs       []string `json:"photo_urls,omitempty" bson:"photo_urls,omitempty"`
	Notes           string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

// BOLSubmission is the lifecycle record of a driver's delivery confirmation.
// Created pending, reviewed exactly once by the broker, invoiced on approval.
type BOLSubmission struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LoadID        string             `json:"load_id" bson:"load_id" validate:"required"`
	DriverID      string             `json:"driver_id" bson:"driver_id" validate:"required"`
	BrokerID      string             `json:"broker_id" bson:"broker_id" validate:"required"`
	ShipperID     string             `json:"shipper_id,omitempty" bson:"shipper_id,omitempty"`
	Rate          decimal.Decimal    `json:"rate" bson:"rate"`
	BOLData       BOLData            `json:"bol_data" bson:"bol_data"`
	Status        BOLStatus          `json:"status" bson:"status"`
	ReviewNotes   string             `json:"review_notes,omitempty" bson:"review_notes,omitempty"`
	ReviewedBy    string             `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	InvoiceID     string             `json:"invoice_id,omitempty" bson:"invoice_id,omitempty"`
	InvoiceAmount decimal.Decimal    `json:"invoice_amount,omitempty" bson:"invoice_amount,omitempty"`
	DriverPhone   string             `json:"driver_phone,omitempty" bson:"driver_phone,omitempty"`
	BrokerPhone   string             `json:"broker_phone,omitempty" bson:"broker_phone,omitempty"`
	ReviewedAt    *time.Time         `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// BOLSubmitRequest is the driver submission payload.
type BOLSubmitRequest struct {
	LoadID      string          `json:"load_id" validate:"required,load_ref"`
	DriverID    string          `json:"driver_id" validate:"required"`
	BrokerID    string          `json:"broker_id" validate:"required"`
	ShipperID   string          `json:"shipper_id"`
	Rate        decimal.Decimal `json:"rate" validate:"omitempty,gte=0"`
	BOLData     *BOLData        `json:"bol_data" validate:"required"`
	DriverPhone string          `json:"driver_phone" validate:"omitempty,phone_number"`
	BrokerPhone string          `json:"broker_phone" validate:"omitempty,phone_number"`
}

// ChargeLine is a single labeled adjustment applied during broker review.
type ChargeLine struct {
	Description string          `json:"description" bson:"description"`
	Amount      decimal.Decimal `json:"amount" bson:"amount"`
}

// RateAdjustments are the broker's optional modifications applied at
// approval time. ApprovedFeeIDs approve pending accessorial fees through
// the ledger, receipt rules included.
type RateAdjustments struct {
	Rate              *decimal.Decimal `json:"rate,omitempty"`
	AdditionalCharges []ChargeLine     `json:"additional_charges,omitempty"`
	Deductions        []ChargeLine     `json:"deductions,omitempty"`
	ApprovedFeeIDs    []string         `json:"approved_fee_ids,omitempty"`
}

// ApprovalDecision is the broker's review verdict.
type ApprovalDecision struct {
	Approved    bool             `json:"approved"`
	ReviewedBy  string           `json:"reviewed_by" validate:"required"`
	ReviewNotes string           `json:"review_notes,omitempty"`
	Adjustments *RateAdjustments `json:"adjustments,omitempty"`
}
