package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/services"
)

type pipeline struct {
	bol           services.BOLService
	accessorials  services.AccessorialService
	bolRepo       *memoryBOLRepo
	invoiceRepo   *memoryInvoiceRepo
	notifications *memoryNotificationRepo
}

func newPipeline() *pipeline {
	log := testLogger()
	bolRepo := newMemoryBOLRepo()
	accessorialRepo := newMemoryAccessorialRepo()
	invoiceRepo := newMemoryInvoiceRepo()
	notificationRepo := newMemoryNotificationRepo()

	accessorialService := services.NewAccessorialService(accessorialRepo, nil, testFeeConfig(), log)
	invoiceService := services.NewInvoiceService(invoiceRepo, testBillingConfig(), log)
	notificationService := services.NewNotificationService(notificationRepo, nil, log)
	bolService := services.NewBOLService(bolRepo, accessorialService, invoiceService, notificationService, log)

	return &pipeline{
		bol:           bolService,
		accessorials:  accessorialService,
		bolRepo:       bolRepo,
		invoiceRepo:   invoiceRepo,
		notifications: notificationRepo,
	}
}

func validSubmitRequest() *models.BOLSubmitRequest {
	return &models.BOLSubmitRequest{
		LoadID:   "LOAD-900",
		DriverID: "driver-1",
		BrokerID: "broker-1",
		Rate:     decimal.NewFromInt(2750),
		BOLData: &models.BOLData{
			BOLNumber:       "BOL-12345",
			DeliveryDate:    "2025-08-30",
			ReceiverName:    "Acme Receiving",
			DriverSignature: "J. Driver",
		},
		DriverPhone: "+15550001111",
		BrokerPhone: "+15550002222",
	}
}

func TestSubmitBOL_OpensPendingSubmission(t *testing.T) {
	p := newPipeline()

	submission, err := p.bol.SubmitBOL(context.Background(), validSubmitRequest())
	require.NoError(t, err)

	assert.Equal(t, models.BOLStatusPending, submission.Status)
	assert.False(t, submission.ID.IsZero())
	assert.True(t, p.notifications.has(models.EventBOLSubmitted), "broker is notified of the new submission")
}

func TestSubmitBOL_MissingFields(t *testing.T) {
	p := newPipeline()

	req := validSubmitRequest()
	req.LoadID = ""
	req.BOLData.DriverSignature = ""

	_, err := p.bol.SubmitBOL(context.Background(), req)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "load_id")
	assert.Contains(t, validationErr.Fields, "driver_signature")
}

func TestReview_RejectLeavesNoInvoice(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	submission, err := p.bol.SubmitBOL(ctx, validSubmitRequest())
	require.NoError(t, err)

	reviewed, err := p.bol.Review(ctx, submission.ID.Hex(), &models.ApprovalDecision{
		Approved:    false,
		ReviewedBy:  "broker-1",
		ReviewNotes: "signature illegible",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BOLStatusRejected, reviewed.Status)
	assert.Equal(t, "signature illegible", reviewed.ReviewNotes)
	assert.Empty(t, reviewed.InvoiceID)
	assert.Empty(t, p.invoiceRepo.items, "rejection generates no invoice")
	assert.True(t, p.notifications.has(models.EventBOLRejected))
}

func TestReview_ApproveRunsFullPipeline(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	submission, err := p.bol.SubmitBOL(ctx, validSubmitRequest())
	require.NoError(t, err)

	reviewed, err := p.bol.Review(ctx, submission.ID.Hex(), &models.ApprovalDecision{
		Approved:   true,
		ReviewedBy: "broker-1",
		Adjustments: &models.RateAdjustments{
			AdditionalCharges: []models.ChargeLine{{Description: "fuel surcharge", Amount: decimal.NewFromInt(150)}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.BOLStatusInvoiced, reviewed.Status)
	require.NotEmpty(t, reviewed.InvoiceID)
	assert.True(t, reviewed.InvoiceAmount.Equal(decimal.RequireFromString("2900.00")), "got %s", reviewed.InvoiceAmount)

	assert.True(t, p.notifications.has(models.EventBOLApproved))
	assert.True(t, p.notifications.has(models.EventInvoiceGenerated))
	assert.Len(t, p.invoiceRepo.items, 1)
}

func TestReview_ApproveWithAccessorialFees(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	submission, err := p.bol.SubmitBOL(ctx, validSubmitRequest())
	require.NoError(t, err)

	fee, _, err := p.accessorials.AddFee(ctx, submission.LoadID, &models.AccessorialFeeRequest{
		Type:   models.AccessorialTypeLiftgate,
		Amount: decimal.NewFromInt(75),
	})
	require.NoError(t, err)

	reviewed, err := p.bol.Review(ctx, submission.ID.Hex(), &models.ApprovalDecision{
		Approved:   true,
		ReviewedBy: "broker-1",
		Adjustments: &models.RateAdjustments{
			ApprovedFeeIDs: []string{fee.ID.Hex()},
		},
	})
	require.NoError(t, err)

	// 2750 + 75
	assert.True(t, reviewed.InvoiceAmount.Equal(decimal.RequireFromString("2825.00")), "got %s", reviewed.InvoiceAmount)

	approved, err := p.accessorials.GetFee(ctx, fee.ID.Hex())
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Equal(t, "broker-1", approved.ApprovedBy)
}

func TestReview_UnreceiptedLumperBlocksApproval(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	submission, err := p.bol.SubmitBOL(ctx, validSubmitRequest())
	require.NoError(t, err)

	lumper, _, err := p.accessorials.AddFee(ctx, submission.LoadID, &models.AccessorialFeeRequest{
		Type:   models.AccessorialTypeLumper,
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = p.bol.Review(ctx, submission.ID.Hex(), &models.ApprovalDecision{
		Approved:   true,
		ReviewedBy: "broker-1",
		Adjustments: &models.RateAdjustments{
			ApprovedFeeIDs: []string{lumper.ID.Hex()},
		},
	})

	var receiptErr *models.ReceiptRequiredError
	require.ErrorAs(t, err, &receiptErr)

	// The doomed approval must not have moved the submission.
	current, err := p.bol.GetSubmission(ctx, submission.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BOLStatusPending, current.Status)
}

func TestReview_TerminalStatusIsImmutable(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	submission, err := p.bol.SubmitBOL(ctx, validSubmitRequest())
	require.NoError(t, err)

	_, err = p.bol.Review(ctx, submission.ID.Hex(), &models.ApprovalDecision{
		Approved:   false,
		ReviewedBy: "broker-1",
	})
	require.NoError(t, err)

	_, err = p.bol.Review(ctx, submission.ID.Hex(), &models.ApprovalDecision{
		Approved:   true,
		ReviewedBy: "broker-2",
	})

	var stateErr *models.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.BOLStatusRejected, stateErr.Status)

	current, err := p.bol.GetSubmission(ctx, submission.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BOLStatusRejected, current.Status)
	assert.Equal(t, "broker-1", current.ReviewedBy, "the losing review leaves no trace")
}

func TestReview_InvoiceFailureLeavesApproved(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	req := validSubmitRequest()
	req.Rate = decimal.Zero
	submission, err := p.bol.SubmitBOL(ctx, req)
	require.NoError(t, err)

	_, err = p.bol.Review(ctx, submission.ID.Hex(), &models.ApprovalDecision{
		Approved:   true,
		ReviewedBy: "broker-1",
	})

	var genErr *models.GenerationError
	require.ErrorAs(t, err, &genErr)

	// The review itself stood; only invoicing failed.
	current, getErr := p.bol.GetSubmission(ctx, submission.ID.Hex())
	require.NoError(t, getErr)
	assert.Equal(t, models.BOLStatusApproved, current.Status)
	assert.Empty(t, current.InvoiceID)
}

func TestReview_UnknownSubmission(t *testing.T) {
	p := newPipeline()

	_, err := p.bol.Review(context.Background(), "64f000000000000000000000", &models.ApprovalDecision{
		Approved:   true,
		ReviewedBy: "broker-1",
	})

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListSubmissions_FiltersByBroker(t *testing.T) {
	p := newPipeline()
	ctx := context.Background()

	_, err := p.bol.SubmitBOL(ctx, validSubmitRequest())
	require.NoError(t, err)

	other := validSubmitRequest()
	other.LoadID = "LOAD-901"
	other.BrokerID = "broker-2"
	_, err = p.bol.SubmitBOL(ctx, other)
	require.NoError(t, err)

	results, total, err := p.bol.ListSubmissions(ctx, &interfaces.BOLFilter{BrokerID: "broker-2"}, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "broker-2", results[0].BrokerID)
}
