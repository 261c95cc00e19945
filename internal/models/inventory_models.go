package models

import "time"

// Inventory transaction types.
const (
	TransactionTypeIn  = "IN"
	TransactionTypeOut = "OUT"
	TransactionTypeAdj = "ADJ"
)

// Inventory is the current stock snapshot for one product. The snapshot is
// maintained transactionally on every recorded movement; it is never derived
// by summing the transaction log on read.
type Inventory struct {
	ID              int64      `json:"id" db:"id"`
	ProductID       int64      `json:"product_id" db:"product_id"`
	Quantity        int        `json:"quantity" db:"quantity"`
	MinStockLevel   int        `json:"min_stock_level" db:"min_stock_level"`
	LastRestockDate *time.Time `json:"last_restock_date,omitempty" db:"last_restock_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`

	Product     *Product `json:"product,omitempty"`
	StockStatus string   `json:"stock_status,omitempty"` // derived, set by the service layer
}

// TransactionFilters narrows transaction history listings.
type TransactionFilters struct {
	InventoryID     *int64
	TransactionType *string
	SupplierID      *int64
	Page            int
	PageSize        int
}

// InventoryTransaction is one recorded stock movement. The log is
// append-only; the supplier reference survives supplier deletion as NULL.
type InventoryTransaction struct {
	ID              int64     `json:"id" db:"id"`
	InventoryID     int64     `json:"inventory_id" db:"inventory_id"`
	Quantity        int       `json:"quantity" db:"quantity"` // signed delta as applied
	TransactionType string    `json:"transaction_type" db:"transaction_type"`
	SupplierID      *int64    `json:"supplier_id,omitempty" db:"supplier_id"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	Supplier *Supplier `json:"supplier,omitempty"`
}
