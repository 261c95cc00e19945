package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAnimalTypeDerivesSlug(t *testing.T) {
	service := NewAnimalTypeService(nil, newFakeAnimalTypeRepo())

	animalType, err := service.CreateAnimalType(CreateAnimalTypeRequest{Name: "West African Dwarf Goat", Age: 8})
	require.NoError(t, err)
	assert.Equal(t, "west-african-dwarf-goat", animalType.Slug)
	assert.Equal(t, 8, animalType.Age)
}

func TestCreateAnimalTypeRejectsDuplicates(t *testing.T) {
	repo := newFakeAnimalTypeRepo()
	service := NewAnimalTypeService(nil, repo)

	_, err := service.CreateAnimalType(CreateAnimalTypeRequest{Name: "Poultry"})
	require.NoError(t, err)

	_, err = service.CreateAnimalType(CreateAnimalTypeRequest{Name: "Poultry"})
	assert.ErrorIs(t, err, ErrAnimalTypeConflict)

	// Same slug through a different display name also collides.
	_, err = service.CreateAnimalType(CreateAnimalTypeRequest{Name: "POULTRY!"})
	assert.ErrorIs(t, err, ErrAnimalTypeConflict)
}

func TestCreateAnimalTypeRejectsUnsluggableName(t *testing.T) {
	service := NewAnimalTypeService(nil, newFakeAnimalTypeRepo())

	_, err := service.CreateAnimalType(CreateAnimalTypeRequest{Name: "!!!"})
	assert.ErrorIs(t, err, ErrInvalidSlug)
}

func TestGetAnimalTypeNotFound(t *testing.T) {
	service := NewAnimalTypeService(nil, newFakeAnimalTypeRepo())

	_, err := service.GetAnimalTypeByID(99)
	assert.ErrorIs(t, err, ErrAnimalTypeNotFound)

	_, err = service.GetAnimalTypeBySlug("missing")
	assert.ErrorIs(t, err, ErrAnimalTypeNotFound)

	err = service.DeleteAnimalType(99)
	assert.ErrorIs(t, err, ErrAnimalTypeNotFound)
}
