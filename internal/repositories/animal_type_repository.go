package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"farmstock_backend/internal/models"

	"github.com/lib/pq"
)

// AnimalTypeRepository defines the interface for animal type database operations.
type AnimalTypeRepository interface {
	Create(executor SQLExecutor, animalType *models.AnimalType) (int64, error)
	GetByID(id int64) (*models.AnimalType, error)
	GetBySlug(slug string) (*models.AnimalType, error)
	GetAll(page, pageSize int) ([]models.AnimalType, int, error)
	GetNames() ([]string, error)
	Update(executor SQLExecutor, animalType *models.AnimalType) error
	Delete(executor SQLExecutor, id int64) error
}

type animalTypeRepository struct {
	db *sql.DB
}

// NewAnimalTypeRepository creates a new instance of AnimalTypeRepository.
func NewAnimalTypeRepository(db *sql.DB) AnimalTypeRepository {
	return &animalTypeRepository{db: db}
}

func (r *animalTypeRepository) Create(executor SQLExecutor, animalType *models.AnimalType) (int64, error) {
	query := `INSERT INTO animal_types (name, slug, age, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		animalType.Name, animalType.Slug, animalType.Age, animalType.Description, currentTime, currentTime,
	).Scan(&animalType.ID, &animalType.CreatedAt, &animalType.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: animal type name or slug already exists (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating animal type: %v", ErrDatabaseError, err)
	}
	return animalType.ID, nil
}

func (r *animalTypeRepository) GetByID(id int64) (*models.AnimalType, error) {
	query := `SELECT id, name, slug, age, description, created_at, updated_at
	          FROM animal_types WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id), id)
}

func (r *animalTypeRepository) GetBySlug(slug string) (*models.AnimalType, error) {
	query := `SELECT id, name, slug, age, description, created_at, updated_at
	          FROM animal_types WHERE slug = $1`
	return r.scanOne(r.db.QueryRow(query, slug), 0)
}

func (r *animalTypeRepository) scanOne(row scanner, id int64) (*models.AnimalType, error) {
	animalType := &models.AnimalType{}
	err := row.Scan(
		&animalType.ID, &animalType.Name, &animalType.Slug, &animalType.Age,
		&animalType.Description, &animalType.CreatedAt, &animalType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting animal type %d: %v", ErrDatabaseError, id, err)
	}
	return animalType, nil
}

func (r *animalTypeRepository) GetAll(page, pageSize int) ([]models.AnimalType, int, error) {
	animalTypes := []models.AnimalType{}
	totalCount := 0
	query := `SELECT id, name, slug, age, description, created_at, updated_at, COUNT(*) OVER() AS total_count
	          FROM animal_types
	          ORDER BY name
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting animal types: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var animalType models.AnimalType
		if err := rows.Scan(
			&animalType.ID, &animalType.Name, &animalType.Slug, &animalType.Age,
			&animalType.Description, &animalType.CreatedAt, &animalType.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning animal type: %v", ErrDatabaseError, err)
		}
		animalTypes = append(animalTypes, animalType)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating animal types: %v", ErrDatabaseError, err)
	}
	return animalTypes, totalCount, nil
}

func (r *animalTypeRepository) GetNames() ([]string, error) {
	rows, err := r.db.Query(`SELECT name FROM animal_types`)
	if err != nil {
		return nil, fmt.Errorf("%w: getting animal type names: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scanning animal type name: %v", ErrDatabaseError, err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating animal type names: %v", ErrDatabaseError, err)
	}
	return names, nil
}

func (r *animalTypeRepository) Update(executor SQLExecutor, animalType *models.AnimalType) error {
	query := `UPDATE animal_types SET name = $1, slug = $2, age = $3, description = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query,
		animalType.Name, animalType.Slug, animalType.Age, animalType.Description, time.Now(), animalType.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: animal type name or slug already exists (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating animal type ID %d: %v", ErrDatabaseError, animalType.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an animal type. Products referencing it (and their images,
// inventory and transactions) are removed by the ON DELETE CASCADE chain.
func (r *animalTypeRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM animal_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting animal type ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
