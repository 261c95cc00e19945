package services

import (
	"database/sql"
	"errors"
	"fmt"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/repositories"
)

// ErrSupplierNotFound is returned when a supplier lookup matches nothing.
var ErrSupplierNotFound = errors.New("supplier not found")

// CreateSupplierRequest is the DTO for creating a supplier.
type CreateSupplierRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         string  `json:"phone" binding:"max=20"`
	Address       string  `json:"address"`
	IsActive      *bool   `json:"is_active"`
}

// UpdateSupplierRequest is the DTO for updating a supplier.
type UpdateSupplierRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         string  `json:"phone" binding:"max=20"`
	Address       string  `json:"address"`
	IsActive      bool    `json:"is_active"`
}

// SupplierService defines the interface for supplier business logic.
type SupplierService interface {
	CreateSupplier(req CreateSupplierRequest) (*models.Supplier, error)
	GetSupplierByID(id int64) (*models.Supplier, error)
	GetAllSuppliers(isActive *bool, page, pageSize int) ([]models.Supplier, int, error)
	UpdateSupplier(id int64, req UpdateSupplierRequest) (*models.Supplier, error)
	DeleteSupplier(id int64) error
}

type supplierService struct {
	db           *sql.DB
	supplierRepo repositories.SupplierRepository
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(db *sql.DB, supplierRepo repositories.SupplierRepository) SupplierService {
	return &supplierService{db: db, supplierRepo: supplierRepo}
}

func (s *supplierService) CreateSupplier(req CreateSupplierRequest) (*models.Supplier, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	supplier := &models.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      isActive,
	}
	if _, err := s.supplierRepo.Create(s.db, supplier); err != nil {
		return nil, fmt.Errorf("creating supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetSupplierByID(id int64) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("getting supplier %d: %w", id, err)
	}
	return supplier, nil
}

func (s *supplierService) GetAllSuppliers(isActive *bool, page, pageSize int) ([]models.Supplier, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.supplierRepo.GetAll(isActive, page, pageSize)
}

func (s *supplierService) UpdateSupplier(id int64, req UpdateSupplierRequest) (*models.Supplier, error) {
	supplier := &models.Supplier{
		ID:            id,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      req.IsActive,
	}
	if err := s.supplierRepo.Update(s.db, supplier); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("updating supplier %d: %w", id, err)
	}
	return s.GetSupplierByID(id)
}

// DeleteSupplier removes a supplier. Product associations are dropped and
// historical inventory transactions keep their rows with the supplier nulled.
func (s *supplierService) DeleteSupplier(id int64) error {
	if err := s.supplierRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("deleting supplier %d: %w", id, err)
	}
	return nil
}
