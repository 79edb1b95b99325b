package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tradehub/marketplace-backend/internal/pricing"
	"github.com/tradehub/marketplace-backend/pkg/db/models"
)

// Repository reads the pricing inputs from the catalog tables. It never writes.
type Repository struct {
	db *gorm.DB
}

var (
	_ pricing.ProductReader  = (*Repository)(nil)
	_ pricing.DiscountReader = (*Repository)(nil)
)

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindProduct loads a product snapshot; a missing row yields nil, nil.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*pricing.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toProduct(product), nil
}

// ListCustomerGroups returns the groups the buyer belongs to for the supplier
// and payment type, oldest first.
func (r *Repository) ListCustomerGroups(ctx context.Context, filter pricing.CustomerGroupFilter) ([]pricing.CustomerGroup, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CustomerGroup{}).
		Joins("JOIN customer_group_buyers cgb ON cgb.customer_group_id = customer_groups.id").
		Where("cgb.buyer_id = ?", filter.BuyerID).
		Where("customer_groups.supplier_id = ?", filter.SupplierID).
		Where("customer_groups.payment_type = ?", filter.PaymentType)
	if filter.ActiveOnly {
		query = query.Where("customer_groups.is_active = ?", true)
	}

	var rows []models.CustomerGroup
	if err := query.
		Order("customer_groups.created_at ASC").
		Order("customer_groups.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCustomerGroups(rows), nil
}

// FindCategoryAssignment loads the product's assignment to categoryID with the
// category name; a missing row yields nil, nil.
func (r *Repository) FindCategoryAssignment(ctx context.Context, productID, categoryID uuid.UUID) (*pricing.CategoryAssignment, error) {
	var row models.ProductCategory
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("product_id = ? AND category_id = ?", productID, categoryID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	assignment := toCategoryAssignment(row)
	return &assignment, nil
}

// ListCategoryAssignments returns every category assignment of the product.
func (r *Repository) ListCategoryAssignments(ctx context.Context, productID uuid.UUID) ([]pricing.CategoryAssignment, error) {
	var rows []models.ProductCategory
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCategoryAssignments(rows), nil
}
