package models

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports missing or malformed input fields. Surfaced as 400.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports an unknown submission, fee or invoice id. Surfaced as 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidStateError reports an illegal lifecycle transition attempt,
// including a losing concurrent writer. Surfaced as 409.
type InvalidStateError struct {
	SubmissionID string
	Status       BOLStatus
	Transition   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("submission %s is %s, cannot transition to %s", e.SubmissionID, e.Status, e.Transition)
}

// ReceiptRequiredError blocks approval of a fee that requires a receipt
// but has no receipt number attached. Surfaced as 400.
type ReceiptRequiredError struct {
	FeeID   string
	FeeType AccessorialType
}

func (e *ReceiptRequiredError) Error() string {
	return fmt.Sprintf("%s fee %s requires a receipt number before approval", e.FeeType, e.FeeID)
}

// GenerationError reports an invoice computation failure. Surfaced as 500.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return "invoice generation failed: " + e.Reason
}
