package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccessorialType string
type DetentionLocation string

const (
	AccessorialTypeDetention  AccessorialType = "detention"
	AccessorialTypeLumper     AccessorialType = "lumper"
	AccessorialTypeLiftgate   AccessorialType = "liftgate"
	AccessorialTypeLayover    AccessorialType = "layover"
	AccessorialTypeTONU       AccessorialType = "tonu"
	AccessorialTypeRedelivery AccessorialType = "redelivery"
	AccessorialTypeOther      AccessorialType = "other"

	DetentionLocationPickup   DetentionLocation = "pickup"
	DetentionLocationDelivery DetentionLocation = "delivery"
)

var AllAccessorialTypes = []AccessorialType{
	AccessorialTypeDetention,
	AccessorialTypeLumper,
	AccessorialTypeLiftgate,
	AccessorialTypeLayover,
	AccessorialTypeTONU,
	AccessorialTypeRedelivery,
	AccessorialTypeOther,
}

func (t AccessorialType) Valid() bool {
	for _, known := range AllAccessorialTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AccessorialFee is a single charge beyond the base freight rate, attached
// to a load. Approval is a separate explicit action from creation.
type AccessorialFee struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LoadID          string             `json:"load_id" bson:"load_id" validate:"required"`
	Type            AccessorialType    `json:"type" bson:"type" validate:"required"`
	Description     string             `json:"description" bson:"description"`
	Amount          decimal.Decimal    `json:"amount" bson:"amount"`
	Quantity        decimal.Decimal    `json:"quantity,omitempty" bson:"quantity,omitempty"`
	RatePerUnit     decimal.Decimal    `json:"rate_per_unit,omitempty" bson:"rate_per_unit,omitempty"`
	Approved        bool               `json:"approved" bson:"approved"`
	ApprovedBy      string             `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt      *time.Time         `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	ReceiptRequired bool               `json:"receipt_required" bson:"receipt_required"`
	ReceiptNumber   string             `json:"receipt_number,omitempty" bson:"receipt_number,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// DetentionFee describes time held at a facility beyond free time.
// It is stored on the ledger as an AccessorialFee of type detention.
type DetentionFee struct {
	Hours         decimal.Decimal   `json:"hours" validate:"gte=0"`
	RatePerHour   decimal.Decimal   `json:"rate_per_hour" validate:"gte=0"`
	FreeTimeHours decimal.Decimal   `json:"free_time_hours,omitempty" validate:"omitempty,gte=0"`
	Location      DetentionLocation `json:"location" validate:"required,detention_location"`
}

// Total is the billable detention amount: hours beyond free time, never
// negative, rounded to cents.
func (d *DetentionFee) Total() decimal.Decimal {
	billable := d.Hours.Sub(d.FreeTimeHours)
	if billable.IsNegative() {
		return decimal.Zero
	}
	return billable.Mul(d.RatePerHour).Round(2)
}

// AccessorialFeeRequest adds a fee to a load's ledger. The amount comes
// either flat or as a Quantity and RatePerUnit pair; a flat zero is a
// legal entry.
type AccessorialFeeRequest struct {
	Type          AccessorialType `json:"type" validate:"required,accessorial_type"`
	Description   string          `json:"description" validate:"omitempty,max=255"`
	Amount        decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Quantity      decimal.Decimal `json:"quantity" validate:"omitempty,gt=0"`
	RatePerUnit   decimal.Decimal `json:"rate_per_unit" validate:"omitempty,gte=0"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
}

// ApproveFeeRequest marks a ledger entry approved for billing.
type ApproveFeeRequest struct {
	ApprovedBy    string `json:"approved_by" validate:"required"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
}

// AccessorialSummary aggregates a load's ledger. TotalApproved and
// TotalPending partition TotalAmount by the approved flag.
type AccessorialSummary struct {
	LoadID        string          `json:"load_id"`
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalApproved decimal.Decimal `json:"total_approved"`
	TotalPending  decimal.Decimal `json:"total_pending"`
}
