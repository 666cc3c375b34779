package validators

import (
	"fleetflow/internal/models"
)

// ValidateFeeCalculation checks a dispatch fee quote request. Unknown
// load types are accepted here; the fee service decides whether they
// fall back to the default percentage or are rejected.
func ValidateFeeCalculation(req *models.FeeCalculationRequest) error {
	errs := ValidateStruct(req)

	if req.ManagementOverride != nil && req.ManagementOverride.IsNegative() {
		errs = append(errs, ValidationError{
			Field:   "management_override",
			Tag:     "gte",
			Value:   req.ManagementOverride.String(),
			Message: "Override percentage must not be negative",
		})
	}

	return toDomainError(errs)
}

// ValidateAccessorialFee checks a ledger entry request. The amount may
// come flat (zero included) or as quantity times rate; half a unit pair
// is rejected.
func ValidateAccessorialFee(req *models.AccessorialFeeRequest) error {
	errs := ValidateStruct(req)

	if req.Quantity.IsPositive() != req.RatePerUnit.IsPositive() {
		errs = append(errs, ValidationError{
			Field:   "quantity",
			Tag:     "required",
			Message: "Provide both a quantity and a rate per unit",
		})
	}

	return toDomainError(errs)
}

// ValidateDetention checks a detention fee request.
func ValidateDetention(req *models.DetentionFee) error {
	return toDomainError(ValidateStruct(req))
}

// ValidateApproveFee checks a fee approval request.
func ValidateApproveFee(req *models.ApproveFeeRequest) error {
	return toDomainError(ValidateStruct(req))
}
