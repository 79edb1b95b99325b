package catalog

import (
	"github.com/samber/lo"

	"github.com/tradehub/marketplace-backend/internal/pricing"
	"github.com/tradehub/marketplace-backend/pkg/db/models"
)

func toProduct(m models.Product) *pricing.Product {
	return &pricing.Product{
		ID:                m.ID,
		SupplierID:        m.SupplierID,
		Name:              m.Name,
		BasePrice:         m.Price,
		MinimumOrderCount: m.MinimumOrderCount,
		Unit:              m.Unit,
	}
}

func toCustomerGroups(rows []models.CustomerGroup) []pricing.CustomerGroup {
	return lo.Map(rows, func(m models.CustomerGroup, _ int) pricing.CustomerGroup {
		return pricing.CustomerGroup{
			ID:              m.ID,
			SupplierID:      m.SupplierID,
			Name:            m.Name,
			PaymentType:     m.PaymentType,
			DiscountPercent: m.DiscountPercent,
			IsActive:        m.IsActive,
			CreatedAt:       m.CreatedAt,
		}
	})
}

func toCategoryAssignment(m models.ProductCategory) pricing.CategoryAssignment {
	var minimum *int
	if m.MinimumOrderForDiscount != nil {
		minimum = lo.ToPtr(*m.MinimumOrderForDiscount)
	}
	return pricing.CategoryAssignment{
		ProductID:               m.ProductID,
		CategoryID:              m.CategoryID,
		CategoryName:            m.Category.Name,
		MinimumOrderForDiscount: minimum,
		DiscountPercent:         m.DiscountPercent,
	}
}

func toCategoryAssignments(rows []models.ProductCategory) []pricing.CategoryAssignment {
	return lo.Map(rows, func(m models.ProductCategory, _ int) pricing.CategoryAssignment {
		return toCategoryAssignment(m)
	})
}
