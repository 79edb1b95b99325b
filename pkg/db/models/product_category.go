package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCategory assigns a product to a category and carries the category volume discount.
type ProductCategory struct {
	ID                      uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID               uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	CategoryID              uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	MinimumOrderForDiscount *int            `gorm:"column:minimum_order_for_discount"`
	DiscountPercent         decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null;default:0"`
	Category                Category        `gorm:"foreignKey:CategoryID"`
	CreatedAt               time.Time       `gorm:"column:created_at;autoCreateTime"`
}
