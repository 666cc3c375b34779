package services

import (
	"context"

	"github.com/shopspring/decimal"

	"fleetflow/internal/config"
	"fleetflow/internal/models"
	"fleetflow/internal/utils"
	"fleetflow/pkg/logger"
)

// FeeService quotes dispatch fees as a percentage of the load amount.
type FeeService interface {
	ComputeFee(ctx context.Context, req *models.FeeCalculationRequest) (*models.FeeQuote, error)
	PercentageFor(loadType models.LoadType) (decimal.Decimal, bool)
}

type feeService struct {
	config *config.FeeConfig
	logger *logger.Logger
}

func NewFeeService(cfg *config.FeeConfig, log *logger.Logger) FeeService {
	return &feeService{
		config: cfg,
		logger: log,
	}
}

// PercentageFor returns the configured percentage for a load type and
// whether the type was recognized.
func (s *feeService) PercentageFor(loadType models.LoadType) (decimal.Decimal, bool) {
	if rate, ok := s.config.LoadTypeRates[string(loadType)]; ok {
		return decimal.NewFromFloat(rate), true
	}
	return decimal.NewFromFloat(s.config.DefaultPercentage), false
}

func (s *feeService) ComputeFee(ctx context.Context, req *models.FeeCalculationRequest) (*models.FeeQuote, error) {
	// A zero load amount is a legal input and quotes a zero fee.
	if req.LoadAmount.IsNegative() {
		return nil, &models.ValidationError{Fields: map[string]string{
			"load_amount": "Load amount must not be negative",
		}}
	}

	percentage, known := s.PercentageFor(req.LoadType)
	if !known {
		if s.config.StrictLoadTypes {
			return nil, &models.ValidationError{Fields: map[string]string{
				"load_type": "Unknown load type",
			}}
		}
		s.logger.WithField("load_type", req.LoadType).
			Warn("Unknown load type, using default fee percentage")
	}

	minPct := decimal.NewFromFloat(s.config.MinPercentage)
	maxPct := decimal.NewFromFloat(s.config.MaxPercentage)

	overrideApplied := false
	if req.ManagementOverride != nil && s.config.AllowOverrides {
		percentage = utils.ClampPercentage(*req.ManagementOverride, minPct, maxPct)
		overrideApplied = true
	} else {
		percentage = utils.ClampPercentage(percentage, minPct, maxPct)
	}

	quote := &models.FeeQuote{
		LoadAmount:      req.LoadAmount,
		LoadType:        req.LoadType,
		FeePercentage:   percentage,
		DispatchFee:     utils.PercentOf(req.LoadAmount, percentage),
		OverrideApplied: overrideApplied,
	}

	s.logger.LogFeeCalculation(string(quote.LoadType), quote.FeePercentage, quote.DispatchFee, quote.OverrideApplied)

	return quote, nil
}
