package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"farmstock_backend/internal/models"
)

// SupplierRepository defines the interface for supplier database operations.
type SupplierRepository interface {
	Create(executor SQLExecutor, supplier *models.Supplier) (int64, error)
	GetByID(id int64) (*models.Supplier, error)
	GetAll(isActive *bool, page, pageSize int) ([]models.Supplier, int, error)
	GetByProductID(productID int64) ([]models.Supplier, error)
	Update(executor SQLExecutor, supplier *models.Supplier) error
	Delete(executor SQLExecutor, id int64) error
}

type supplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository creates a new instance of SupplierRepository.
func NewSupplierRepository(db *sql.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(executor SQLExecutor, supplier *models.Supplier) (int64, error) {
	query := `INSERT INTO suppliers (name, contact_person, email, phone, address, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		supplier.Name, supplier.ContactPerson, supplier.Email, supplier.Phone,
		supplier.Address, supplier.IsActive, currentTime, currentTime,
	).Scan(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating supplier: %v", ErrDatabaseError, err)
	}
	return supplier.ID, nil
}

func (r *supplierRepository) GetByID(id int64) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `SELECT id, name, contact_person, email, phone, address, is_active, created_at, updated_at
	          FROM suppliers WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&supplier.ID, &supplier.Name, &supplier.ContactPerson, &supplier.Email,
		&supplier.Phone, &supplier.Address, &supplier.IsActive, &supplier.CreatedAt, &supplier.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting supplier by ID %d: %v", ErrDatabaseError, id, err)
	}
	return supplier, nil
}

func (r *supplierRepository) GetAll(isActive *bool, page, pageSize int) ([]models.Supplier, int, error) {
	suppliers := []models.Supplier{}
	totalCount := 0

	query := `SELECT id, name, contact_person, email, phone, address, is_active, created_at, updated_at,
	                 COUNT(*) OVER() AS total_count
	          FROM suppliers`
	args := []interface{}{}
	if isActive != nil {
		query += ` WHERE is_active = $1`
		args = append(args, *isActive)
	}
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting suppliers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var supplier models.Supplier
		if err := rows.Scan(
			&supplier.ID, &supplier.Name, &supplier.ContactPerson, &supplier.Email,
			&supplier.Phone, &supplier.Address, &supplier.IsActive,
			&supplier.CreatedAt, &supplier.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning supplier: %v", ErrDatabaseError, err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating suppliers: %v", ErrDatabaseError, err)
	}
	return suppliers, totalCount, nil
}

func (r *supplierRepository) GetByProductID(productID int64) ([]models.Supplier, error) {
	query := `SELECT s.id, s.name, s.contact_person, s.email, s.phone, s.address, s.is_active,
	                 s.created_at, s.updated_at
	          FROM suppliers s
	          JOIN product_suppliers ps ON ps.supplier_id = s.id
	          WHERE ps.product_id = $1
	          ORDER BY s.name`
	rows, err := r.db.Query(query, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting suppliers for product %d: %v", ErrDatabaseError, productID, err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		var supplier models.Supplier
		if err := rows.Scan(
			&supplier.ID, &supplier.Name, &supplier.ContactPerson, &supplier.Email,
			&supplier.Phone, &supplier.Address, &supplier.IsActive,
			&supplier.CreatedAt, &supplier.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning product supplier: %v", ErrDatabaseError, err)
		}
		suppliers = append(suppliers, supplier)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product suppliers: %v", ErrDatabaseError, err)
	}
	return suppliers, nil
}

func (r *supplierRepository) Update(executor SQLExecutor, supplier *models.Supplier) error {
	query := `UPDATE suppliers SET name = $1, contact_person = $2, email = $3, phone = $4,
	          address = $5, is_active = $6, updated_at = $7
	          WHERE id = $8`
	result, err := executor.Exec(query,
		supplier.Name, supplier.ContactPerson, supplier.Email, supplier.Phone,
		supplier.Address, supplier.IsActive, time.Now(), supplier.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating supplier ID %d: %v", ErrDatabaseError, supplier.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a supplier. Product associations go with it (CASCADE on the
// join table) and historical inventory transactions keep their rows with the
// supplier reference nulled (ON DELETE SET NULL).
func (r *supplierRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting supplier ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
