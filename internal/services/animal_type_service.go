package services

import (
	"database/sql"
	"errors"
	"fmt"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/repositories"
	"farmstock_backend/pkg/utils"
)

// Service-level errors for animal type operations.
var (
	ErrAnimalTypeNotFound = errors.New("animal type not found")
	ErrAnimalTypeConflict = errors.New("animal type with this name or slug already exists")
	ErrInvalidSlug        = errors.New("name does not produce a valid slug")
)

// CreateAnimalTypeRequest is the DTO for creating an animal type.
type CreateAnimalTypeRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Slug        string  `json:"slug" binding:"max=255"`
	Age         int     `json:"age" binding:"gte=0"`
	Description *string `json:"description"`
}

// UpdateAnimalTypeRequest is the DTO for updating an animal type.
type UpdateAnimalTypeRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Slug        string  `json:"slug" binding:"max=255"`
	Age         int     `json:"age" binding:"gte=0"`
	Description *string `json:"description"`
}

// AnimalTypeService defines the interface for animal type business logic.
type AnimalTypeService interface {
	CreateAnimalType(req CreateAnimalTypeRequest) (*models.AnimalType, error)
	GetAnimalTypeByID(id int64) (*models.AnimalType, error)
	GetAnimalTypeBySlug(slug string) (*models.AnimalType, error)
	GetAllAnimalTypes(page, pageSize int) ([]models.AnimalType, int, error)
	UpdateAnimalType(id int64, req UpdateAnimalTypeRequest) (*models.AnimalType, error)
	DeleteAnimalType(id int64) error
}

type animalTypeService struct {
	db             *sql.DB
	animalTypeRepo repositories.AnimalTypeRepository
}

// NewAnimalTypeService creates a new AnimalTypeService.
func NewAnimalTypeService(db *sql.DB, animalTypeRepo repositories.AnimalTypeRepository) AnimalTypeService {
	return &animalTypeService{db: db, animalTypeRepo: animalTypeRepo}
}

// resolveSlug normalizes an explicit slug, or derives one from the display
// name when the slug is absent.
func resolveSlug(name, explicit string) (string, error) {
	source := explicit
	if source == "" {
		source = name
	}
	slug := utils.Slugify(source)
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, source)
	}
	return slug, nil
}

func (s *animalTypeService) CreateAnimalType(req CreateAnimalTypeRequest) (*models.AnimalType, error) {
	slug, err := resolveSlug(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	animalType := &models.AnimalType{
		Name:        req.Name,
		Slug:        slug,
		Age:         req.Age,
		Description: req.Description,
	}
	if _, err := s.animalTypeRepo.Create(s.db, animalType); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrAnimalTypeConflict, err)
		}
		return nil, fmt.Errorf("creating animal type: %w", err)
	}
	return animalType, nil
}

func (s *animalTypeService) GetAnimalTypeByID(id int64) (*models.AnimalType, error) {
	animalType, err := s.animalTypeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAnimalTypeNotFound
		}
		return nil, fmt.Errorf("getting animal type %d: %w", id, err)
	}
	return animalType, nil
}

func (s *animalTypeService) GetAnimalTypeBySlug(slug string) (*models.AnimalType, error) {
	animalType, err := s.animalTypeRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAnimalTypeNotFound
		}
		return nil, fmt.Errorf("getting animal type %q: %w", slug, err)
	}
	return animalType, nil
}

func (s *animalTypeService) GetAllAnimalTypes(page, pageSize int) ([]models.AnimalType, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.animalTypeRepo.GetAll(page, pageSize)
}

func (s *animalTypeService) UpdateAnimalType(id int64, req UpdateAnimalTypeRequest) (*models.AnimalType, error) {
	slug, err := resolveSlug(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	animalType := &models.AnimalType{
		ID:          id,
		Name:        req.Name,
		Slug:        slug,
		Age:         req.Age,
		Description: req.Description,
	}
	if err := s.animalTypeRepo.Update(s.db, animalType); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAnimalTypeNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrAnimalTypeConflict, err)
		}
		return nil, fmt.Errorf("updating animal type %d: %w", id, err)
	}
	// Fetch after write so the response carries the stored timestamps.
	return s.GetAnimalTypeByID(id)
}

// DeleteAnimalType removes the category. All products referencing it, and
// their images, inventory and transaction history, are removed with it.
func (s *animalTypeService) DeleteAnimalType(id int64) error {
	if err := s.animalTypeRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAnimalTypeNotFound
		}
		return fmt.Errorf("deleting animal type %d: %w", id, err)
	}
	return nil
}
