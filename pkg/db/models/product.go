package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the supplier listing priced by the calculation engine.
type Product struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID        uuid.UUID         `gorm:"column:supplier_id;type:uuid;not null"`
	Name              string            `gorm:"column:name;not null"`
	Price             decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	MinimumOrderCount int               `gorm:"column:minimum_order_count;not null;default:1"`
	Unit              string            `gorm:"column:unit;not null;default:'piece'"`
	IsActive          bool              `gorm:"column:is_active;not null;default:true"`
	ProductCategories []ProductCategory `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
