package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog product persisted in the local store.
// SKU is the business key used to match distributor feed records; ID is the
// internal surrogate identifier.
type Product struct {
	ID            string          `gorm:"type:char(36);primaryKey" json:"id"`
	SKU           string          `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Name          string          `gorm:"size:255" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Category      string          `gorm:"size:128;index" json:"category"`
	Brand         string          `gorm:"size:128" json:"brand"`
	UPC           string          `gorm:"size:32" json:"upc"`
	Cost          decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was provided.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Category groups products for the admin dashboard.
type Category struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	ParentID  *string   `gorm:"type:char(36)" json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was provided.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ProductFilter narrows List queries from the admin dashboard.
type ProductFilter struct {
	Category     string `query:"category"`
	SKUPrefix    string `query:"sku_prefix"`
	NameContains string `query:"name_contains"`
	Limit        int    `query:"limit"`
}

// ImportReport summarizes one product import run.
// Row failures are isolated: a bad row is recorded here and the import
// continues with the next row.
type ImportReport struct {
	TotalRows int      `json:"total_rows"`
	Created   int      `json:"created"`
	Updated   int      `json:"updated"`
	Errors    []string `json:"errors"`
	// ArchiveObject is the storage key of the uploaded file, kept so every
	// import can be traced back to the exact file submitted.
	ArchiveObject string `json:"archive_object,omitempty"`
}
