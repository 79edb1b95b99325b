package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/tradehub/marketplace-backend/pkg/errors"
)

// Calculate prices req.Quantity units of a product. The customer-group discount
// is applied before the category discount, each to the running price.
func (s *service) Calculate(ctx context.Context, req CalculationRequest) (result *CalculationResult, err error) {
	defer func(started time.Time) { s.observe(operationCalculate, started, err) }(s.now())
	return s.calculate(ctx, req)
}

func (s *service) calculate(ctx context.Context, req CalculationRequest) (*CalculationResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.loadProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if req.Quantity < product.MinimumOrderCount {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Minimum order quantity is %d units", product.MinimumOrderCount).
			WithDetails(map[string]any{
				"minimum_order_count": product.MinimumOrderCount,
				"requested_quantity":  req.Quantity,
			})
	}

	group, category, err := s.resolveDiscounts(ctx, product, req)
	if err != nil {
		return nil, err
	}

	quantity := decimal.NewFromInt(int64(req.Quantity))
	subtotal := product.BasePrice.Mul(quantity)
	breakdown := PriceBreakdown{
		BasePrice:                   product.BasePrice,
		Quantity:                    req.Quantity,
		Subtotal:                    subtotal,
		CustomerGroupDiscount:       decimal.Zero,
		CustomerGroupDiscountAmount: decimal.Zero,
		CategoryDiscount:            decimal.Zero,
		CategoryDiscountAmount:      decimal.Zero,
	}
	story := newNarrative(s.format, product.BasePrice, req.Quantity, subtotal)
	discounts := []AppliedDiscount{}

	current := subtotal

	if group.Applies() {
		amount := percentOf(current, group.Percent)
		current = current.Sub(amount)

		breakdown.CustomerGroupDiscount = group.Percent
		breakdown.CustomerGroupDiscountAmount = amount
		discounts = append(discounts, AppliedDiscount{
			Kind:    DiscountKindCustomerGroup,
			Name:    group.GroupName,
			Percent: group.Percent,
			Amount:  amount,
		})
		story.customerGroup(group, amount)
		s.metrics.IncDiscountApplied(string(DiscountKindCustomerGroup))
	}

	if category.Applies() {
		amount := percentOf(current, category.Percent)
		current = current.Sub(amount)

		minimum := category.MinimumOrder
		breakdown.CategoryDiscount = category.Percent
		breakdown.CategoryDiscountAmount = amount
		discounts = append(discounts, AppliedDiscount{
			Kind:         DiscountKindCategory,
			Name:         category.CategoryName,
			Percent:      category.Percent,
			Amount:       amount,
			MinimumOrder: &minimum,
		})
		story.category(category, amount)
		s.metrics.IncDiscountApplied(string(DiscountKindCategory))
	}

	breakdown.FinalPrice = current
	breakdown.UnitPrice = current.Div(quantity)
	story.final(breakdown.FinalPrice, breakdown.UnitPrice)

	return &CalculationResult{
		ProductID:        product.ID,
		ProductName:      product.Name,
		PaymentType:      req.PaymentType,
		Breakdown:        breakdown,
		Discounts:        discounts,
		AppliedDiscounts: story.applied,
		PriceExplanation: story.explanation,
	}, nil
}

// resolveDiscounts runs the optional group and category lookups concurrently.
// The category threshold is checked against the requested quantity.
func (s *service) resolveDiscounts(ctx context.Context, product *Product, req CalculationRequest) (GroupDiscount, CategoryDiscount, error) {
	var (
		group    GroupDiscount
		category CategoryDiscount
	)

	g, gctx := errgroup.WithContext(ctx)
	if req.BuyerID != nil {
		buyerID := *req.BuyerID
		g.Go(func() error {
			var err error
			group, err = s.lookup.ResolveCustomerGroupDiscount(gctx, buyerID, product.SupplierID, req.PaymentType)
			return err
		})
	}
	if req.CategoryID != nil {
		categoryID := *req.CategoryID
		g.Go(func() error {
			var err error
			category, err = s.lookup.ResolveCategoryDiscount(gctx, product.ID, categoryID, req.Quantity)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return GroupDiscount{}, CategoryDiscount{}, err
	}
	return group, category, nil
}

// percentOf returns price × percent / 100 without rounding.
func percentOf(price, percent decimal.Decimal) decimal.Decimal {
	return price.Mul(percent).Shift(-2)
}

func validateRequest(req CalculationRequest) error {
	if req.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]any{"quantity": req.Quantity})
	}
	if !req.PaymentType.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid payment type %q", req.PaymentType)
	}
	return nil
}
