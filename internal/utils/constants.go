package utils

import "time"

// Application Constants
const (
	AppName    = "FleetFlow"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Fee policy defaults
	DefaultFeePercentage = 10.0
	MinFeePercentage     = 5.0
	MaxFeePercentage     = 15.0

	// Detention policy
	DefaultDetentionFreeTimeHours = 2.0

	// Invoicing
	DefaultInvoiceDueDays = 30

	// Notification
	NotificationTimeout = 30 * time.Second

	// Cache TTLs
	SubmissionCacheTTL = 1 * time.Hour
	InvoiceCacheTTL    = 24 * time.Hour
	SummaryCacheTTL    = 5 * time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrNotFound         = "not found"
	ErrConflict         = "conflict"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CacheSubmissionPrefix = "bol:"
	CacheInvoicePrefix    = "invoice:"
	CacheSummaryPrefix    = "accessorial_summary:"
)

// Error Codes surfaced in the response envelope
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidState      = "INVALID_STATE"
	CodeReceiptRequired   = "RECEIPT_REQUIRED"
	CodeGenerationFailed  = "INVOICE_GENERATION_FAILED"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeBadRequest        = "BAD_REQUEST"
)
