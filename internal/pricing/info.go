package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	pkgerrors "github.com/tradehub/marketplace-backend/pkg/errors"
)

// ProductPriceInfo lists a product's base price and every category volume
// discount it advertises. Nothing is computed.
func (s *service) ProductPriceInfo(ctx context.Context, productID uuid.UUID) (info *ProductPriceInfo, err error) {
	defer func(started time.Time) { s.observe(operationProductInfo, started, err) }(s.now())

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.discounts.ListCategoryAssignments(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category assignments")
	}

	available := lo.FilterMap(assignments, func(a CategoryAssignment, _ int) (AvailableDiscount, bool) {
		if !hasVolumeDiscount(a) {
			return AvailableDiscount{}, false
		}
		return AvailableDiscount{
			Type:            DiscountKindCategory,
			CategoryID:      a.CategoryID,
			CategoryName:    a.CategoryName,
			DiscountPercent: a.DiscountPercent,
			MinimumOrder:    *a.MinimumOrderForDiscount,
		}, true
	})

	return &ProductPriceInfo{
		ProductID:          product.ID,
		ProductName:        product.Name,
		BasePrice:          product.BasePrice,
		MinimumOrderCount:  product.MinimumOrderCount,
		Unit:               product.Unit,
		AvailableDiscounts: available,
	}, nil
}
