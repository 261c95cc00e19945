package services

import (
	"testing"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/repositories"
	"farmstock_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthRepo struct {
	users map[int64]*models.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[int64]*models.User{}}
}

func (f *fakeAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return 0, repositories.ErrDuplicateKey
		}
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeAuthRepo) GetUserByID(id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeAuthRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitJWT("test-secret")
	service := NewAuthService(nil, newFakeAuthRepo())

	user, err := service.Register(RegisterRequest{
		Username: "farmadmin",
		Email:    "admin@farmstock.test",
		Password: "correct horse battery",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	response, err := service.Login(LoginRequest{Username: "farmadmin", Password: "correct horse battery"})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, user.ID, response.User.ID)

	claims, err := utils.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, "farmadmin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	utils.InitJWT("test-secret")
	service := NewAuthService(nil, newFakeAuthRepo())

	_, err := service.Register(RegisterRequest{
		Username: "farmadmin",
		Email:    "admin@farmstock.test",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = service.Login(LoginRequest{Username: "farmadmin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	service := NewAuthService(nil, newFakeAuthRepo())

	_, err := service.Register(RegisterRequest{
		Username: "farmadmin", Email: "admin@farmstock.test", Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = service.Register(RegisterRequest{
		Username: "farmadmin", Email: "other@farmstock.test", Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}
