package services_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetflow/internal/models"
	"fleetflow/internal/services"
)

func testSubmission(rate string) *models.BOLSubmission {
	return &models.BOLSubmission{
		ID:       primitive.NewObjectID(),
		LoadID:   "LOAD-500",
		DriverID: "driver-1",
		BrokerID: "broker-1",
		Rate:     decimal.RequireFromString(rate),
		Status:   models.BOLStatusApproved,
	}
}

func TestGenerateInvoice_BaseRateOnly(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := services.NewInvoiceService(repo, testBillingConfig(), testLogger())

	invoice, err := svc.GenerateInvoice(context.Background(), testSubmission("2750"), nil, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, invoice.Amount.Equal(decimal.RequireFromString("2750.00")), "got %s", invoice.Amount)
	assert.Equal(t, models.InvoiceStatusIssued, invoice.Status)
	assert.Equal(t, "USD", invoice.Currency)
}

func TestGenerateInvoice_ChargesDeductionsAndAccessorials(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := services.NewInvoiceService(repo, testBillingConfig(), testLogger())

	adjustments := &models.RateAdjustments{
		AdditionalCharges: []models.ChargeLine{{Description: "fuel surcharge", Amount: decimal.NewFromInt(150)}},
		Deductions:        []models.ChargeLine{{Description: "late fee", Amount: decimal.NewFromInt(50)}},
	}

	invoice, err := svc.GenerateInvoice(context.Background(), testSubmission("2750"), adjustments, decimal.NewFromInt(75))
	require.NoError(t, err)

	// 2750 + 150 - 50 + 75
	assert.True(t, invoice.Amount.Equal(decimal.RequireFromString("2925.00")), "got %s", invoice.Amount)
	assert.True(t, invoice.AccessorialTotal.Equal(decimal.RequireFromString("75.00")))
}

func TestGenerateInvoice_RateOverride(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := services.NewInvoiceService(repo, testBillingConfig(), testLogger())

	adjusted := decimal.NewFromInt(2900)
	invoice, err := svc.GenerateInvoice(context.Background(), testSubmission("2750"), &models.RateAdjustments{
		Rate: &adjusted,
	}, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, invoice.BaseRate.Equal(decimal.RequireFromString("2900.00")))
	assert.True(t, invoice.Amount.Equal(decimal.RequireFromString("2900.00")))
}

func TestGenerateInvoice_NumberFormat(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := services.NewInvoiceService(repo, testBillingConfig(), testLogger())

	invoice, err := svc.GenerateInvoice(context.Background(), testSubmission("2750"), nil, decimal.Zero)
	require.NoError(t, err)

	pattern := fmt.Sprintf(`^INV-%s-\d{6}$`, regexp.QuoteMeta("LOAD-500"))
	assert.Regexp(t, pattern, invoice.InvoiceNumber)
}

func TestGenerateInvoice_DueDate(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := services.NewInvoiceService(repo, testBillingConfig(), testLogger())

	invoice, err := svc.GenerateInvoice(context.Background(), testSubmission("2750"), nil, decimal.Zero)
	require.NoError(t, err)

	expected := invoice.IssuedAt.AddDate(0, 0, 30)
	assert.WithinDuration(t, expected, invoice.DueAt, time.Second)
}

func TestGenerateInvoice_MissingBaseRate(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := services.NewInvoiceService(repo, testBillingConfig(), testLogger())

	_, err := svc.GenerateInvoice(context.Background(), testSubmission("0"), nil, decimal.Zero)

	var genErr *models.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Reason, "base rate")
}

func TestGenerateInvoice_NegativeTotal(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := services.NewInvoiceService(repo, testBillingConfig(), testLogger())

	adjustments := &models.RateAdjustments{
		Deductions: []models.ChargeLine{{Description: "claim", Amount: decimal.NewFromInt(5000)}},
	}

	_, err := svc.GenerateInvoice(context.Background(), testSubmission("2750"), adjustments, decimal.Zero)

	var genErr *models.GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestGenerateInvoice_StoreFailure(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	repo.failCreate = true
	svc := services.NewInvoiceService(repo, testBillingConfig(), testLogger())

	_, err := svc.GenerateInvoice(context.Background(), testSubmission("2750"), nil, decimal.Zero)

	var genErr *models.GenerationError
	require.ErrorAs(t, err, &genErr)
}
