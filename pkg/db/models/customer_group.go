package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradehub/marketplace-backend/pkg/enums"
)

// CustomerGroup is a supplier-defined buyer segment with a payment-scoped discount.
type CustomerGroup struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID      uuid.UUID         `gorm:"column:supplier_id;type:uuid;not null"`
	Name            string            `gorm:"column:name;not null"`
	PaymentType     enums.PaymentType `gorm:"column:payment_type;not null"`
	DiscountPercent decimal.Decimal   `gorm:"column:discount_percent;type:numeric(5,2);not null;default:0"`
	IsActive        bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// CustomerGroupBuyer is the membership join between groups and buyers.
type CustomerGroupBuyer struct {
	CustomerGroupID uuid.UUID `gorm:"column:customer_group_id;type:uuid;primaryKey"`
	BuyerID         uuid.UUID `gorm:"column:buyer_id;type:uuid;primaryKey"`
}
