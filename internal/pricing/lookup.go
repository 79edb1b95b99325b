package pricing

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/tradehub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/tradehub/marketplace-backend/pkg/errors"
	"github.com/tradehub/marketplace-backend/pkg/logger"
)

var maxPercent = decimal.NewFromInt(100)

// GroupDiscount is the resolved customer-group discount. The zero value means none.
type GroupDiscount struct {
	GroupID   uuid.UUID
	GroupName string
	Percent   decimal.Decimal
}

// Applies reports whether the discount changes the price.
func (d GroupDiscount) Applies() bool {
	return d.Percent.IsPositive()
}

// CategoryDiscount is the resolved category volume discount. The zero value means none.
type CategoryDiscount struct {
	CategoryID   uuid.UUID
	CategoryName string
	Percent      decimal.Decimal
	MinimumOrder int
}

func (d CategoryDiscount) Applies() bool {
	return d.Percent.IsPositive()
}

// DiscountLookup resolves both discount sources from persisted records.
type DiscountLookup struct {
	reader DiscountReader
	logg   *logger.Logger
}

func NewDiscountLookup(reader DiscountReader, logg *logger.Logger) *DiscountLookup {
	if logg == nil {
		logg = logger.Nop()
	}
	return &DiscountLookup{reader: reader, logg: logg}
}

// ResolveCustomerGroupDiscount returns the discount of the active group the buyer
// belongs to under supplierID for exactly paymentType. When several groups
// qualify the highest percent wins, then the oldest group, then the smallest id.
func (l *DiscountLookup) ResolveCustomerGroupDiscount(ctx context.Context, buyerID, supplierID uuid.UUID, paymentType enums.PaymentType) (GroupDiscount, error) {
	groups, err := l.reader.ListCustomerGroups(ctx, CustomerGroupFilter{
		BuyerID:     buyerID,
		SupplierID:  supplierID,
		PaymentType: paymentType,
		ActiveOnly:  true,
	})
	if err != nil {
		return GroupDiscount{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer groups")
	}

	candidates := lo.Filter(groups, func(g CustomerGroup, _ int) bool {
		if !g.IsActive || g.PaymentType != paymentType || g.SupplierID != supplierID {
			return false
		}
		if !validPercent(g.DiscountPercent) {
			l.logg.Warn(l.logg.WithFields(ctx, map[string]any{
				"customer_group_id": g.ID.String(),
				"discount_percent":  g.DiscountPercent.String(),
			}), "pricing.customer_group.percent_out_of_range")
			return false
		}
		return true
	})
	if len(candidates) == 0 {
		return GroupDiscount{}, nil
	}

	if len(candidates) > 1 {
		sortGroupCandidates(candidates)
		l.logg.Warn(l.logg.WithFields(ctx, map[string]any{
			"buyer_id":     buyerID.String(),
			"supplier_id":  supplierID.String(),
			"payment_type": paymentType.String(),
			"group_ids":    lo.Map(candidates, func(g CustomerGroup, _ int) string { return g.ID.String() }),
			"selected_id":  candidates[0].ID.String(),
		}), "pricing.customer_group.multiple_matches")
	}

	chosen := candidates[0]
	return GroupDiscount{
		GroupID:   chosen.ID,
		GroupName: chosen.Name,
		Percent:   chosen.DiscountPercent,
	}, nil
}

// ResolveCategoryDiscount returns the category volume discount only when the
// assignment has a positive percent, a minimum order, and quantity reaches it.
func (l *DiscountLookup) ResolveCategoryDiscount(ctx context.Context, productID, categoryID uuid.UUID, quantity int) (CategoryDiscount, error) {
	assignment, err := l.reader.FindCategoryAssignment(ctx, productID, categoryID)
	if err != nil {
		return CategoryDiscount{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category assignment")
	}
	if assignment == nil {
		return CategoryDiscount{}, nil
	}
	if !qualifiesForCategoryDiscount(*assignment, quantity) {
		return CategoryDiscount{}, nil
	}
	if !validPercent(assignment.DiscountPercent) {
		l.logg.Warn(l.logg.WithFields(ctx, map[string]any{
			"product_id":       productID.String(),
			"category_id":      categoryID.String(),
			"discount_percent": assignment.DiscountPercent.String(),
		}), "pricing.category.percent_out_of_range")
		return CategoryDiscount{}, nil
	}

	return CategoryDiscount{
		CategoryID:   assignment.CategoryID,
		CategoryName: assignment.CategoryName,
		Percent:      assignment.DiscountPercent,
		MinimumOrder: *assignment.MinimumOrderForDiscount,
	}, nil
}

func qualifiesForCategoryDiscount(a CategoryAssignment, quantity int) bool {
	if !hasVolumeDiscount(a) {
		return false
	}
	return quantity >= *a.MinimumOrderForDiscount
}

// hasVolumeDiscount reports whether the assignment advertises a usable discount.
func hasVolumeDiscount(a CategoryAssignment) bool {
	return a.DiscountPercent.IsPositive() && a.MinimumOrderForDiscount != nil && *a.MinimumOrderForDiscount > 0
}

func validPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(maxPercent)
}

func sortGroupCandidates(groups []CustomerGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if cmp := a.DiscountPercent.Cmp(b.DiscountPercent); cmp != 0 {
			return cmp > 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}
