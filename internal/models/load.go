package models

import (
	"github.com/shopspring/decimal"
)

type LoadType string

const (
	LoadTypeStandard  LoadType = "standard"
	LoadTypeExpedited LoadType = "expedited"
	LoadTypeHazmat    LoadType = "hazmat"
	LoadTypeOversize  LoadType = "oversize"
	LoadTypeTeam      LoadType = "team"
)

var AllLoadTypes = []LoadType{
	LoadTypeStandard,
	LoadTypeExpedited,
	LoadTypeHazmat,
	LoadTypeOversize,
	LoadTypeTeam,
}

func (t LoadType) Valid() bool {
	for _, known := range AllLoadTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FeeQuote is the result of a dispatch fee calculation.
type FeeQuote struct {
	LoadAmount      decimal.Decimal `json:"load_amount"`
	LoadType        LoadType        `json:"load_type"`
	FeePercentage   decimal.Decimal `json:"fee_percentage"`
	DispatchFee     decimal.Decimal `json:"dispatch_fee"`
	OverrideApplied bool            `json:"override_applied"`
}

type FeeCalculationRequest struct {
	LoadAmount         decimal.Decimal  `json:"load_amount" validate:"gte=0"`
	LoadType           LoadType         `json:"load_type" validate:"required"`
	ManagementOverride *decimal.Decimal `json:"management_override,omitempty"`
}
