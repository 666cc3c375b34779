package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusSent   InvoiceStatus = "sent"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// Invoice is the billing document produced when an approved BOL submission
// is invoiced. Amount = base rate (possibly adjusted) + additional charges
// - deductions + approved accessorials.
type Invoice struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	InvoiceNumber     string             `json:"invoice_number" bson:"invoice_number"`
	SubmissionID      primitive.ObjectID `json:"submission_id" bson:"submission_id"`
	LoadID            string             `json:"load_id" bson:"load_id"`
	BrokerID          string             `json:"broker_id" bson:"broker_id"`
	ShipperID         string             `json:"shipper_id,omitempty" bson:"shipper_id,omitempty"`
	BaseRate          decimal.Decimal    `json:"base_rate" bson:"base_rate"`
	AdditionalCharges []ChargeLine       `json:"additional_charges,omitempty" bson:"additional_charges,omitempty"`
	Deductions        []ChargeLine       `json:"deductions,omitempty" bson:"deductions,omitempty"`
	AccessorialTotal  decimal.Decimal    `json:"accessorial_total" bson:"accessorial_total"`
	Amount            decimal.Decimal    `json:"amount" bson:"amount"`
	Currency          string             `json:"currency" bson:"currency"`
	Status            InvoiceStatus      `json:"status" bson:"status"`
	IssuedAt          time.Time          `json:"issued_at" bson:"issued_at"`
	DueAt             time.Time          `json:"due_at" bson:"due_at"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}
