package services

import (
	"database/sql"
	"errors"
	"fmt"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/repositories"
)

// Stock status classification values. Computed identically everywhere the
// status is surfaced.
const (
	StockStatusOut     = "out"
	StockStatusLow     = "low"
	StockStatusStocked = "stocked"
)

// Service-level errors for inventory operations.
var (
	ErrInventoryNotFound      = errors.New("inventory not found")
	ErrInvalidTransactionType = errors.New("transaction type must be one of IN, OUT, ADJ")
	ErrInvalidQuantity        = errors.New("quantity must be a positive magnitude for IN and OUT transactions")
	ErrInsufficientStock      = errors.New("transaction would drive stock quantity below zero")
)

// StockStatus classifies a quantity against its minimum stock threshold:
// "out" when the quantity is zero or below, "low" when positive but at or
// under the threshold, "stocked" otherwise.
func StockStatus(quantity, minStockLevel int) string {
	switch {
	case quantity <= 0:
		return StockStatusOut
	case quantity <= minStockLevel:
		return StockStatusLow
	default:
		return StockStatusStocked
	}
}

// RecordTransactionRequest is the DTO for recording a stock movement.
// Quantity is a positive magnitude for IN and OUT; for ADJ it is the signed
// delta applied directly.
type RecordTransactionRequest struct {
	TransactionType string  `json:"transaction_type" binding:"required,oneof=IN OUT ADJ"`
	Quantity        int     `json:"quantity" binding:"required"`
	SupplierID      *int64  `json:"supplier_id" binding:"omitempty,gt=0"`
	Notes           *string `json:"notes"`
}

// UpdateInventorySettingsRequest is the DTO for adjusting the low-stock threshold.
type UpdateInventorySettingsRequest struct {
	MinStockLevel int `json:"min_stock_level" binding:"gte=0"`
}

// InventoryService defines the interface for inventory ledger business logic.
type InventoryService interface {
	GetInventoryByID(id int64) (*models.Inventory, error)
	GetInventoryByProductID(productID int64) (*models.Inventory, error)
	GetAllInventories(page, pageSize int) ([]models.Inventory, int, error)
	EnsureInventory(productID int64) (*models.Inventory, error)
	UpdateInventorySettings(id int64, req UpdateInventorySettingsRequest) (*models.Inventory, error)
	RecordTransaction(inventoryID int64, req RecordTransactionRequest) (*models.InventoryTransaction, error)
	RecordTransactionForProduct(productID int64, req RecordTransactionRequest) (*models.InventoryTransaction, error)
	GetTransactions(filters models.TransactionFilters) ([]models.InventoryTransaction, int, error)
}

type inventoryService struct {
	db            *sql.DB
	inventoryRepo repositories.InventoryRepository
	supplierRepo  repositories.SupplierRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(
	db *sql.DB,
	inventoryRepo repositories.InventoryRepository,
	supplierRepo repositories.SupplierRepository,
) InventoryService {
	return &inventoryService{db: db, inventoryRepo: inventoryRepo, supplierRepo: supplierRepo}
}

func withStockStatus(inventory *models.Inventory) *models.Inventory {
	inventory.StockStatus = StockStatus(inventory.Quantity, inventory.MinStockLevel)
	return inventory
}

func (s *inventoryService) GetInventoryByID(id int64) (*models.Inventory, error) {
	inventory, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("getting inventory %d: %w", id, err)
	}
	return withStockStatus(inventory), nil
}

func (s *inventoryService) GetInventoryByProductID(productID int64) (*models.Inventory, error) {
	inventory, err := s.inventoryRepo.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("getting inventory for product %d: %w", productID, err)
	}
	return withStockStatus(inventory), nil
}

func (s *inventoryService) GetAllInventories(page, pageSize int) ([]models.Inventory, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	inventories, totalCount, err := s.inventoryRepo.GetAll(page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	for i := range inventories {
		withStockStatus(&inventories[i])
	}
	return inventories, totalCount, nil
}

// EnsureInventory idempotently creates the inventory row for a product.
// Calling it twice for the same product is a no-op the second time.
func (s *inventoryService) EnsureInventory(productID int64) (*models.Inventory, error) {
	inventory, err := s.inventoryRepo.EnsureForProduct(s.db, productID)
	if err != nil {
		return nil, fmt.Errorf("ensuring inventory for product %d: %w", productID, err)
	}
	return withStockStatus(inventory), nil
}

func (s *inventoryService) UpdateInventorySettings(id int64, req UpdateInventorySettingsRequest) (*models.Inventory, error) {
	if err := s.inventoryRepo.UpdateSettings(s.db, id, req.MinStockLevel); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("updating inventory %d settings: %w", id, err)
	}
	return s.GetInventoryByID(id)
}

// RecordTransaction appends one movement to the ledger and updates the stock
// snapshot in the same database transaction: +quantity for IN, -quantity for
// OUT (both supplied as positive magnitudes), the signed quantity directly
// for ADJ. A movement that would drive the snapshot below zero is rejected
// and leaves both the snapshot and the ledger unchanged.
func (s *inventoryService) RecordTransaction(inventoryID int64, req RecordTransactionRequest) (*models.InventoryTransaction, error) {
	var delta int
	switch req.TransactionType {
	case models.TransactionTypeIn:
		if req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		delta = req.Quantity
	case models.TransactionTypeOut:
		if req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		delta = -req.Quantity
	case models.TransactionTypeAdj:
		delta = req.Quantity
	default:
		return nil, ErrInvalidTransactionType
	}

	if req.SupplierID != nil {
		if _, err := s.supplierRepo.GetByID(*req.SupplierID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrSupplierNotFound
			}
			return nil, fmt.Errorf("checking supplier %d: %w", *req.SupplierID, err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	restocked := req.TransactionType == models.TransactionTypeIn
	if _, err := s.inventoryRepo.ApplyQuantityDelta(tx, inventoryID, delta, restocked); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		if errors.Is(err, repositories.ErrCheckViolation) {
			return nil, fmt.Errorf("%w: delta %d", ErrInsufficientStock, delta)
		}
		return nil, fmt.Errorf("applying stock delta to inventory %d: %w", inventoryID, err)
	}

	transaction := &models.InventoryTransaction{
		InventoryID:     inventoryID,
		Quantity:        delta,
		TransactionType: req.TransactionType,
		SupplierID:      req.SupplierID,
		Notes:           req.Notes,
	}
	if _, err := s.inventoryRepo.CreateTransaction(tx, transaction); err != nil {
		return nil, fmt.Errorf("recording inventory transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return transaction, nil
}

// RecordTransactionForProduct records a movement addressed by product rather
// than by inventory row.
func (s *inventoryService) RecordTransactionForProduct(productID int64, req RecordTransactionRequest) (*models.InventoryTransaction, error) {
	inventory, err := s.inventoryRepo.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("getting inventory for product %d: %w", productID, err)
	}
	return s.RecordTransaction(inventory.ID, req)
}

func (s *inventoryService) GetTransactions(filters models.TransactionFilters) ([]models.InventoryTransaction, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	if filters.TransactionType != nil && *filters.TransactionType != "" {
		switch *filters.TransactionType {
		case models.TransactionTypeIn, models.TransactionTypeOut, models.TransactionTypeAdj:
		default:
			return nil, 0, ErrInvalidTransactionType
		}
	}
	return s.inventoryRepo.GetTransactions(filters)
}
