package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmstock_backend/internal/models"
)

// InventoryRepository defines the interface for inventory snapshot and
// transaction-log database operations.
type InventoryRepository interface {
	EnsureForProduct(executor SQLExecutor, productID int64) (*models.Inventory, error)
	GetByID(id int64) (*models.Inventory, error)
	GetByProductID(productID int64) (*models.Inventory, error)
	GetAll(page, pageSize int) ([]models.Inventory, int, error)
	UpdateSettings(executor SQLExecutor, id int64, minStockLevel int) error

	// ApplyQuantityDelta atomically adjusts the snapshot quantity. The update
	// is conditional on the result staying non-negative, so concurrent
	// movements can neither lose an update nor drive quantity below zero.
	// Returns ErrCheckViolation when the delta would make quantity negative.
	ApplyQuantityDelta(executor SQLExecutor, inventoryID int64, delta int, restocked bool) (int, error)

	CreateTransaction(executor SQLExecutor, transaction *models.InventoryTransaction) (int64, error)
	GetTransactions(filters models.TransactionFilters) ([]models.InventoryTransaction, int, error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// EnsureForProduct idempotently creates the inventory row for a product with
// quantity 0 and the default minimum stock level. Calling it again for the
// same product returns the existing row unchanged.
func (r *inventoryRepository) EnsureForProduct(executor SQLExecutor, productID int64) (*models.Inventory, error) {
	query := `INSERT INTO inventory (product_id, quantity, min_stock_level, created_at, updated_at)
	          VALUES ($1, 0, 5, $2, $2)
	          ON CONFLICT (product_id) DO NOTHING
	          RETURNING id, product_id, quantity, min_stock_level, last_restock_date, created_at, updated_at`
	inventory := &models.Inventory{}
	err := executor.QueryRow(query, productID, time.Now()).Scan(
		&inventory.ID, &inventory.ProductID, &inventory.Quantity, &inventory.MinStockLevel,
		&inventory.LastRestockDate, &inventory.CreatedAt, &inventory.UpdatedAt,
	)
	if err == nil {
		return inventory, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: ensuring inventory for product %d: %v", ErrDatabaseError, productID, err)
	}
	// Conflict: the row already exists, fetch it.
	return r.getByProductID(executor, productID)
}

func (r *inventoryRepository) GetByID(id int64) (*models.Inventory, error) {
	query := `SELECT id, product_id, quantity, min_stock_level, last_restock_date, created_at, updated_at
	          FROM inventory WHERE id = $1`
	inventory := &models.Inventory{}
	err := r.db.QueryRow(query, id).Scan(
		&inventory.ID, &inventory.ProductID, &inventory.Quantity, &inventory.MinStockLevel,
		&inventory.LastRestockDate, &inventory.CreatedAt, &inventory.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inventory %d: %v", ErrDatabaseError, id, err)
	}
	return inventory, nil
}

func (r *inventoryRepository) GetByProductID(productID int64) (*models.Inventory, error) {
	return r.getByProductID(r.db, productID)
}

func (r *inventoryRepository) getByProductID(executor SQLExecutor, productID int64) (*models.Inventory, error) {
	query := `SELECT id, product_id, quantity, min_stock_level, last_restock_date, created_at, updated_at
	          FROM inventory WHERE product_id = $1`
	inventory := &models.Inventory{}
	err := executor.QueryRow(query, productID).Scan(
		&inventory.ID, &inventory.ProductID, &inventory.Quantity, &inventory.MinStockLevel,
		&inventory.LastRestockDate, &inventory.CreatedAt, &inventory.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inventory for product %d: %v", ErrDatabaseError, productID, err)
	}
	return inventory, nil
}

func (r *inventoryRepository) GetAll(page, pageSize int) ([]models.Inventory, int, error) {
	inventories := []models.Inventory{}
	totalCount := 0
	query := `SELECT i.id, i.product_id, i.quantity, i.min_stock_level, i.last_restock_date,
	                 i.created_at, i.updated_at,
	                 p.name AS product_name, p.product_type,
	                 COUNT(*) OVER() AS total_count
	          FROM inventory i
	          JOIN products p ON i.product_id = p.id
	          ORDER BY p.name
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting inventories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var inventory models.Inventory
		var productName, productType string
		if err := rows.Scan(
			&inventory.ID, &inventory.ProductID, &inventory.Quantity, &inventory.MinStockLevel,
			&inventory.LastRestockDate, &inventory.CreatedAt, &inventory.UpdatedAt,
			&productName, &productType, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning inventory: %v", ErrDatabaseError, err)
		}
		inventory.Product = &models.Product{ID: inventory.ProductID, Name: productName, ProductType: productType}
		inventories = append(inventories, inventory)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating inventories: %v", ErrDatabaseError, err)
	}
	return inventories, totalCount, nil
}

func (r *inventoryRepository) UpdateSettings(executor SQLExecutor, id int64, minStockLevel int) error {
	result, err := executor.Exec(
		`UPDATE inventory SET min_stock_level = $1, updated_at = $2 WHERE id = $3`,
		minStockLevel, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("%w: updating inventory %d settings: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) ApplyQuantityDelta(executor SQLExecutor, inventoryID int64, delta int, restocked bool) (int, error) {
	query := `UPDATE inventory
	          SET quantity = quantity + $1,
	              last_restock_date = CASE WHEN $2 THEN $3 ELSE last_restock_date END,
	              updated_at = $3
	          WHERE id = $4 AND quantity + $1 >= 0
	          RETURNING quantity`
	var newQuantity int
	err := executor.QueryRow(query, delta, restocked, time.Now(), inventoryID).Scan(&newQuantity)
	if err == nil {
		return newQuantity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: adjusting inventory %d by %d: %v", ErrDatabaseError, inventoryID, delta, err)
	}

	// The conditional update matched nothing: either the row does not exist
	// or the delta would have driven quantity negative.
	var exists bool
	if err := executor.QueryRow(`SELECT EXISTS(SELECT 1 FROM inventory WHERE id = $1)`, inventoryID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("%w: checking inventory %d: %v", ErrDatabaseError, inventoryID, err)
	}
	if !exists {
		return 0, ErrNotFound
	}
	return 0, fmt.Errorf("%w: adjustment of %d would drive inventory %d quantity negative", ErrCheckViolation, delta, inventoryID)
}

func (r *inventoryRepository) CreateTransaction(executor SQLExecutor, transaction *models.InventoryTransaction) (int64, error) {
	query := `INSERT INTO inventory_transactions (inventory_id, quantity, transaction_type, supplier_id, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err := executor.QueryRow(query,
		transaction.InventoryID, transaction.Quantity, transaction.TransactionType,
		transaction.SupplierID, transaction.Notes, time.Now(),
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating inventory transaction: %v", ErrDatabaseError, err)
	}
	return transaction.ID, nil
}

func (r *inventoryRepository) GetTransactions(filters models.TransactionFilters) ([]models.InventoryTransaction, int, error) {
	transactions := []models.InventoryTransaction{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    t.id, t.inventory_id, t.quantity, t.transaction_type, t.supplier_id, t.notes, t.created_at,
	    s.name AS supplier_name,
	    COUNT(*) OVER() AS total_count
	  FROM inventory_transactions t
	  LEFT JOIN suppliers s ON t.supplier_id = s.id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.InventoryID != nil {
		conditions = append(conditions, fmt.Sprintf("t.inventory_id = $%d", argCount))
		args = append(args, *filters.InventoryID)
		argCount++
	}
	if filters.TransactionType != nil && *filters.TransactionType != "" {
		conditions = append(conditions, fmt.Sprintf("t.transaction_type = $%d", argCount))
		args = append(args, *filters.TransactionType)
		argCount++
	}
	if filters.SupplierID != nil {
		conditions = append(conditions, fmt.Sprintf("t.supplier_id = $%d", argCount))
		args = append(args, *filters.SupplierID)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY t.created_at DESC, t.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting inventory transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var transaction models.InventoryTransaction
		var supplierName *string
		if err := rows.Scan(
			&transaction.ID, &transaction.InventoryID, &transaction.Quantity, &transaction.TransactionType,
			&transaction.SupplierID, &transaction.Notes, &transaction.CreatedAt,
			&supplierName, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning inventory transaction: %v", ErrDatabaseError, err)
		}
		if transaction.SupplierID != nil && supplierName != nil {
			transaction.Supplier = &models.Supplier{ID: *transaction.SupplierID, Name: *supplierName}
		}
		transactions = append(transactions, transaction)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating inventory transactions: %v", ErrDatabaseError, err)
	}
	return transactions, totalCount, nil
}
