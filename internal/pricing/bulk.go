package pricing

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/tradehub/marketplace-backend/pkg/errors"
)

// CalculateBulk prices each (product, quantity) pair in input order with the
// shared payment type and buyer. The first failing item aborts the batch.
func (s *service) CalculateBulk(ctx context.Context, req BulkCalculationRequest) (results []CalculationResult, err error) {
	defer func(started time.Time) { s.observe(operationBulk, started, err) }(s.now())

	if len(req.ProductIDs) != len(req.Quantities) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product ids and quantities must have the same length").
			WithDetails(map[string]any{
				"product_ids": len(req.ProductIDs),
				"quantities":  len(req.Quantities),
			})
	}
	if len(req.ProductIDs) == 0 {
		return []CalculationResult{}, nil
	}

	results = make([]CalculationResult, 0, len(req.ProductIDs))
	for i, productID := range req.ProductIDs {
		result, err := s.calculate(ctx, CalculationRequest{
			ProductID:   productID,
			Quantity:    req.Quantities[i],
			PaymentType: req.PaymentType,
			BuyerID:     req.BuyerID,
		})
		if err != nil {
			return nil, bulkItemError(i, productID.String(), err)
		}
		results = append(results, *result)
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"items":        len(results),
		"payment_type": req.PaymentType.String(),
	}), "pricing.bulk.completed")
	return results, nil
}

func bulkItemError(index int, productID string, err error) error {
	typed := pkgerrors.As(err)
	details := map[string]any{
		"index":      index,
		"product_id": productID,
	}
	if inner, ok := typed.Details().(map[string]any); ok {
		for k, v := range inner {
			if _, taken := details[k]; !taken {
				details[k] = v
			}
		}
	}
	return pkgerrors.Wrap(typed.Code(), err, fmt.Sprintf("item %d: %s", index, messageOf(typed, err))).
		WithDetails(details)
}

func messageOf(typed *pkgerrors.Error, err error) string {
	if typed != nil {
		return typed.Message()
	}
	return err.Error()
}
