package pricing

import (
	"context"

	"github.com/google/uuid"
)

// ProductReader loads product snapshots. A nil product with a nil error means
// the product does not exist.
type ProductReader interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*Product, error)
}

// DiscountReader loads the records both discount sources are derived from.
// Absence is reported as an empty slice or a nil assignment, never as an error.
type DiscountReader interface {
	ListCustomerGroups(ctx context.Context, filter CustomerGroupFilter) ([]CustomerGroup, error)
	FindCategoryAssignment(ctx context.Context, productID, categoryID uuid.UUID) (*CategoryAssignment, error)
	ListCategoryAssignments(ctx context.Context, productID uuid.UUID) ([]CategoryAssignment, error)
}
