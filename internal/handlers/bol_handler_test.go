package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetflow/internal/handlers"
	"fleetflow/internal/models"
	"fleetflow/internal/repositories/interfaces"
	"fleetflow/internal/utils"
)

// stubBOLService returns canned results so the handler layer can be
// tested without repositories.
type stubBOLService struct {
	submission *models.BOLSubmission
	err        error
}

func (s *stubBOLService) SubmitBOL(ctx context.Context, req *models.BOLSubmitRequest) (*models.BOLSubmission, error) {
	return s.submission, s.err
}

func (s *stubBOLService) GetSubmission(ctx context.Context, submissionID string) (*models.BOLSubmission, error) {
	return s.submission, s.err
}

func (s *stubBOLService) ListSubmissions(ctx context.Context, filter *interfaces.BOLFilter, params *utils.PaginationParams) ([]*models.BOLSubmission, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []*models.BOLSubmission{s.submission}, 1, nil
}

func (s *stubBOLService) Review(ctx context.Context, submissionID string, decision *models.ApprovalDecision) (*models.BOLSubmission, error) {
	return s.submission, s.err
}

func newBOLRouter(svc *stubBOLService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewBOLHandler(svc)

	r := gin.New()
	r.POST("/bol/submissions", handler.SubmitBOL)
	r.GET("/bol/submissions", handler.ListSubmissions)
	r.GET("/bol/submissions/:id", handler.GetSubmission)
	r.POST("/bol/submissions/:id/review", handler.ReviewBOL)
	return r
}

func sampleSubmission(status models.BOLStatus) *models.BOLSubmission {
	return &models.BOLSubmission{
		ID:       primitive.NewObjectID(),
		LoadID:   "LOAD-900",
		DriverID: "driver-1",
		BrokerID: "broker-1",
		Rate:     decimal.NewFromInt(2750),
		Status:   status,
	}
}

const submitBody = `{
	"load_id": "LOAD-900",
	"driver_id": "driver-1",
	"broker_id": "broker-1",
	"rate": 2750,
	"bol_data": {
		"bol_number": "BOL-12345",
		"delivery_date": "2025-08-30",
		"receiver_name": "Acme Receiving",
		"driver_signature": "J. Driver"
	}
}`

func TestSubmitBOL_Created(t *testing.T) {
	svc := &stubBOLService{submission: sampleSubmission(models.BOLStatusPending)}
	router := newBOLRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bol/submissions", strings.NewReader(submitBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.Contains(t, w.Body.String(), `"pending"`)
}

func TestSubmitBOL_MalformedJSON(t *testing.T) {
	router := newBOLRouter(&stubBOLService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bol/submissions", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), utils.CodeBadRequest)
}

func TestSubmitBOL_ValidationFailure(t *testing.T) {
	router := newBOLRouter(&stubBOLService{})

	// Missing bol_data entirely; fails validation before the service runs.
	body := `{"load_id": "LOAD-900", "driver_id": "driver-1", "broker_id": "broker-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bol/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), utils.CodeValidationError)
	assert.Contains(t, w.Body.String(), "bol_data")
}

func TestGetSubmission_NotFound(t *testing.T) {
	svc := &stubBOLService{err: &models.NotFoundError{Resource: "bol submission", ID: "missing"}}
	router := newBOLRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bol/submissions/64f000000000000000000000", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), utils.CodeNotFound)
}

func TestReviewBOL_Approved(t *testing.T) {
	svc := &stubBOLService{submission: sampleSubmission(models.BOLStatusInvoiced)}
	router := newBOLRouter(svc)

	body := `{"approved": true, "reviewed_by": "broker-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bol/submissions/64f000000000000000000000/review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "approved and invoiced")
}

func TestReviewBOL_TerminalConflict(t *testing.T) {
	svc := &stubBOLService{err: &models.InvalidStateError{
		SubmissionID: "64f000000000000000000000",
		Status:       models.BOLStatusRejected,
		Transition:   string(models.BOLStatusApproved),
	}}
	router := newBOLRouter(svc)

	body := `{"approved": true, "reviewed_by": "broker-2"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bol/submissions/64f000000000000000000000/review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), utils.CodeInvalidState)
}

func TestReviewBOL_ReceiptRequired(t *testing.T) {
	svc := &stubBOLService{err: &models.ReceiptRequiredError{FeeID: "abc", FeeType: models.AccessorialTypeLumper}}
	router := newBOLRouter(svc)

	body := `{"approved": true, "reviewed_by": "broker-1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bol/submissions/64f000000000000000000000/review", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), utils.CodeReceiptRequired)
}

func TestListSubmissions_Meta(t *testing.T) {
	svc := &stubBOLService{submission: sampleSubmission(models.BOLStatusPending)}
	router := newBOLRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bol/submissions?broker_id=broker-1&page=1&limit=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), `"pagination"`)
}
