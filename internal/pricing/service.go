package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/tradehub/marketplace-backend/pkg/errors"
	"github.com/tradehub/marketplace-backend/pkg/logger"
	"github.com/tradehub/marketplace-backend/pkg/metrics"
)

const (
	operationCalculate   = "calculate"
	operationBulk        = "calculate_bulk"
	operationProductInfo = "product_info"
)

// Service exposes the price calculation engine.
type Service interface {
	Calculate(ctx context.Context, req CalculationRequest) (*CalculationResult, error)
	CalculateBulk(ctx context.Context, req BulkCalculationRequest) ([]CalculationResult, error)
	ProductPriceInfo(ctx context.Context, productID uuid.UUID) (*ProductPriceInfo, error)
}

// ServiceParams wires the engine's collaborators.
type ServiceParams struct {
	Products  ProductReader
	Discounts DiscountReader
	Config    Config
	Logger    *logger.Logger
	Metrics   *metrics.PricingMetrics
}

type service struct {
	products  ProductReader
	discounts DiscountReader
	lookup    *DiscountLookup
	format    formatter
	logg      *logger.Logger
	metrics   *metrics.PricingMetrics
	now       func() time.Time
}

// NewService builds the pricing engine. It holds no mutable state and is safe
// for concurrent use.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if params.Discounts == nil {
		return nil, fmt.Errorf("discount reader required")
	}
	if err := params.Config.Validate(); err != nil {
		return nil, fmt.Errorf("pricing config: %w", err)
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		products:  params.Products,
		discounts: params.Discounts,
		lookup:    NewDiscountLookup(params.Discounts, logg),
		format:    newFormatter(params.Config),
		logg:      logg,
		metrics:   params.Metrics,
		now:       time.Now,
	}, nil
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	product, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": productID.String()})
	}
	return product, nil
}

func (s *service) observe(operation string, started time.Time, err error) {
	s.metrics.ObserveCalculation(operation, outcomeFor(err), s.now().Sub(started))
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch pkgerrors.As(err).Code() {
	case pkgerrors.CodeValidation:
		return metrics.OutcomeValidation
	case pkgerrors.CodeNotFound:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
