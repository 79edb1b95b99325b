package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradehub/marketplace-backend/pkg/enums"
)

// Product is the read-only snapshot of a listing used for one calculation.
type Product struct {
	ID                uuid.UUID
	SupplierID        uuid.UUID
	Name              string
	BasePrice         decimal.Decimal
	MinimumOrderCount int
	Unit              string
}

// CustomerGroup is a supplier-defined buyer segment as seen by the engine.
type CustomerGroup struct {
	ID              uuid.UUID
	SupplierID      uuid.UUID
	Name            string
	PaymentType     enums.PaymentType
	DiscountPercent decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
}

// CategoryAssignment links a product to a category and its volume discount.
type CategoryAssignment struct {
	ProductID               uuid.UUID
	CategoryID              uuid.UUID
	CategoryName            string
	MinimumOrderForDiscount *int
	DiscountPercent         decimal.Decimal
}

// CustomerGroupFilter narrows the groups a DiscountReader returns.
type CustomerGroupFilter struct {
	BuyerID     uuid.UUID
	SupplierID  uuid.UUID
	PaymentType enums.PaymentType
	ActiveOnly  bool
}

// CalculationRequest asks for the price of quantity units of a product.
type CalculationRequest struct {
	ProductID   uuid.UUID
	Quantity    int
	PaymentType enums.PaymentType
	BuyerID     *uuid.UUID
	CategoryID  *uuid.UUID
}

// BulkCalculationRequest prices several products with a shared payment context.
// ProductIDs and Quantities are paired by index.
type BulkCalculationRequest struct {
	ProductIDs  []uuid.UUID
	Quantities  []int
	PaymentType enums.PaymentType
	BuyerID     *uuid.UUID
}

// PriceBreakdown is the numeric trace of one calculation. Nothing in it is rounded.
type PriceBreakdown struct {
	BasePrice                   decimal.Decimal `json:"base_price"`
	Quantity                    int             `json:"quantity"`
	Subtotal                    decimal.Decimal `json:"subtotal"`
	CustomerGroupDiscount       decimal.Decimal `json:"customer_group_discount"`
	CustomerGroupDiscountAmount decimal.Decimal `json:"customer_group_discount_amount"`
	CategoryDiscount            decimal.Decimal `json:"category_discount"`
	CategoryDiscountAmount      decimal.Decimal `json:"category_discount_amount"`
	FinalPrice                  decimal.Decimal `json:"final_price"`
	UnitPrice                   decimal.Decimal `json:"unit_price"`
}

type DiscountKind string

const (
	DiscountKindCustomerGroup DiscountKind = "customer_group"
	DiscountKindCategory      DiscountKind = "category"
)

// AppliedDiscount records one discount in application order.
type AppliedDiscount struct {
	Kind         DiscountKind    `json:"kind"`
	Name         string          `json:"name"`
	Percent      decimal.Decimal `json:"percent"`
	Amount       decimal.Decimal `json:"amount"`
	MinimumOrder *int            `json:"minimum_order,omitempty"`
}

// CalculationResult is returned by Calculate and CalculateBulk.
type CalculationResult struct {
	ProductID        uuid.UUID         `json:"product_id"`
	ProductName      string            `json:"product_name"`
	PaymentType      enums.PaymentType `json:"payment_type"`
	Breakdown        PriceBreakdown    `json:"breakdown"`
	Discounts        []AppliedDiscount `json:"discounts"`
	AppliedDiscounts []string          `json:"applied_discounts"`
	PriceExplanation []string          `json:"price_explanation"`
}

// AvailableDiscount is an informational listing of a category discount.
type AvailableDiscount struct {
	Type            DiscountKind    `json:"type"`
	CategoryID      uuid.UUID       `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MinimumOrder    int             `json:"minimum_order"`
}

// ProductPriceInfo projects a product's base price and its category discounts.
type ProductPriceInfo struct {
	ProductID          uuid.UUID           `json:"product_id"`
	ProductName        string              `json:"product_name"`
	BasePrice          decimal.Decimal     `json:"base_price"`
	MinimumOrderCount  int                 `json:"minimum_order_count"`
	Unit               string              `json:"unit"`
	AvailableDiscounts []AvailableDiscount `json:"available_discounts"`
}
