package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"farmstock_backend/internal/models"

	"github.com/lib/pq"
)

// AuthRepository defines the interface for administrative user operations.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()
	err := executor.QueryRow(query,
		user.Username, user.Email, user.PasswordHash, user.Role, currentTime, currentTime,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: username or email already taken (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

func (r *authRepository) GetUserByID(id int64) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, role, created_at, updated_at
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(query, id))
}

func (r *authRepository) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT id, username, email, password_hash, role, created_at, updated_at
	          FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRow(query, username))
}

func (r *authRepository) scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user: %v", ErrDatabaseError, err)
	}
	return user, nil
}
