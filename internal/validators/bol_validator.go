package validators

import (
	"fleetflow/internal/models"
)

// ValidateBOLSubmit checks a driver submission payload before it enters
// the review pipeline.
func ValidateBOLSubmit(req *models.BOLSubmitRequest) error {
	errs := ValidateStruct(req)

	if req.Rate.IsNegative() {
		errs = append(errs, ValidationError{
			Field:   "rate",
			Tag:     "gte",
			Value:   req.Rate.String(),
			Message: "Rate must not be negative",
		})
	}

	return toDomainError(errs)
}

// ValidateApprovalDecision checks a broker review payload. Adjustment
// semantics (fee approval, receipt rules) are enforced by the service.
func ValidateApprovalDecision(decision *models.ApprovalDecision) error {
	errs := ValidateStruct(decision)

	if adj := decision.Adjustments; adj != nil {
		if adj.Rate != nil && adj.Rate.IsNegative() {
			errs = append(errs, ValidationError{
				Field:   "rate",
				Tag:     "gte",
				Value:   adj.Rate.String(),
				Message: "Adjusted rate must not be negative",
			})
		}
		for _, line := range adj.AdditionalCharges {
			if line.Description == "" {
				errs = append(errs, ValidationError{
					Field:   "additional_charges",
					Tag:     "required",
					Message: "Each additional charge needs a description",
				})
				break
			}
		}
		for _, line := range adj.Deductions {
			if line.Amount.IsNegative() {
				errs = append(errs, ValidationError{
					Field:   "deductions",
					Tag:     "gte",
					Value:   line.Amount.String(),
					Message: "Deduction amounts must not be negative",
				})
				break
			}
		}
	}

	return toDomainError(errs)
}
