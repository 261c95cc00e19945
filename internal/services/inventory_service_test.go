package services

import (
	"testing"

	"farmstock_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		minStockLevel int
		expected      string
	}{
		{"zero quantity is out", 0, 5, StockStatusOut},
		{"negative quantity is out", -3, 5, StockStatusOut},
		{"at threshold is low", 5, 5, StockStatusLow},
		{"below threshold is low", 1, 5, StockStatusLow},
		{"above threshold is stocked", 6, 5, StockStatusStocked},
		{"zero threshold, positive quantity is stocked", 1, 0, StockStatusStocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StockStatus(tt.quantity, tt.minStockLevel))
		})
	}
}

func newInventoryServiceForTest(t *testing.T) (InventoryService, *fakeInventoryRepo, *fakeSupplierRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	inventoryRepo := newFakeInventoryRepo()
	supplierRepo := newFakeSupplierRepo()
	return NewInventoryService(db, inventoryRepo, supplierRepo), inventoryRepo, supplierRepo, mock
}

func TestRecordTransactionDeltas(t *testing.T) {
	service, inventoryRepo, _, mock := newInventoryServiceForTest(t)
	inventory := inventoryRepo.addInventory(1, 0, 5)

	// IN 10, OUT 4, ADJ -2: snapshot must equal the signed sum of deltas.
	steps := []struct {
		transactionType string
		quantity        int
		expectedDelta   int
		expectedTotal   int
	}{
		{models.TransactionTypeIn, 10, 10, 10},
		{models.TransactionTypeOut, 4, -4, 6},
		{models.TransactionTypeAdj, -2, -2, 4},
	}
	for _, step := range steps {
		mock.ExpectBegin()
		mock.ExpectCommit()

		transaction, err := service.RecordTransaction(inventory.ID, RecordTransactionRequest{
			TransactionType: step.transactionType,
			Quantity:        step.quantity,
		})
		require.NoError(t, err)
		assert.Equal(t, step.expectedDelta, transaction.Quantity)
		assert.Equal(t, step.expectedTotal, inventoryRepo.inventories[inventory.ID].Quantity)
	}
	assert.Len(t, inventoryRepo.transactions, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransactionRejectsNonPositiveMagnitude(t *testing.T) {
	service, inventoryRepo, _, _ := newInventoryServiceForTest(t)
	inventory := inventoryRepo.addInventory(1, 10, 5)

	for _, transactionType := range []string{models.TransactionTypeIn, models.TransactionTypeOut} {
		_, err := service.RecordTransaction(inventory.ID, RecordTransactionRequest{
			TransactionType: transactionType,
			Quantity:        -5,
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	// Rejected before any write.
	assert.Equal(t, 10, inventoryRepo.inventories[inventory.ID].Quantity)
	assert.Empty(t, inventoryRepo.transactions)
}

func TestRecordTransactionInsufficientStock(t *testing.T) {
	service, inventoryRepo, _, mock := newInventoryServiceForTest(t)
	inventory := inventoryRepo.addInventory(1, 3, 5)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := service.RecordTransaction(inventory.ID, RecordTransactionRequest{
		TransactionType: models.TransactionTypeOut,
		Quantity:        5,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// State unchanged: no snapshot movement, no ledger entry.
	assert.Equal(t, 3, inventoryRepo.inventories[inventory.ID].Quantity)
	assert.Empty(t, inventoryRepo.transactions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransactionUnknownInventory(t *testing.T) {
	service, _, _, mock := newInventoryServiceForTest(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := service.RecordTransaction(42, RecordTransactionRequest{
		TransactionType: models.TransactionTypeIn,
		Quantity:        1,
	})
	assert.ErrorIs(t, err, ErrInventoryNotFound)
}

func TestRecordTransactionUnknownSupplier(t *testing.T) {
	service, inventoryRepo, _, _ := newInventoryServiceForTest(t)
	inventory := inventoryRepo.addInventory(1, 0, 5)

	supplierID := int64(99)
	_, err := service.RecordTransaction(inventory.ID, RecordTransactionRequest{
		TransactionType: models.TransactionTypeIn,
		Quantity:        5,
		SupplierID:      &supplierID,
	})
	assert.ErrorIs(t, err, ErrSupplierNotFound)
	assert.Empty(t, inventoryRepo.transactions)
}

func TestRecordTransactionSetsRestockDateOnlyForIn(t *testing.T) {
	service, inventoryRepo, _, mock := newInventoryServiceForTest(t)
	inventory := inventoryRepo.addInventory(1, 5, 5)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := service.RecordTransaction(inventory.ID, RecordTransactionRequest{
		TransactionType: models.TransactionTypeOut,
		Quantity:        2,
	})
	require.NoError(t, err)
	assert.Nil(t, inventoryRepo.inventories[inventory.ID].LastRestockDate)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = service.RecordTransaction(inventory.ID, RecordTransactionRequest{
		TransactionType: models.TransactionTypeIn,
		Quantity:        2,
	})
	require.NoError(t, err)
	assert.NotNil(t, inventoryRepo.inventories[inventory.ID].LastRestockDate)
}

func TestEnsureInventoryIsIdempotent(t *testing.T) {
	service, inventoryRepo, _, _ := newInventoryServiceForTest(t)

	first, err := service.EnsureInventory(7)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Quantity)
	assert.Equal(t, 5, first.MinStockLevel)
	assert.Equal(t, StockStatusOut, first.StockStatus)

	// Second call returns the same row, even after stock moved.
	inventoryRepo.inventories[first.ID].Quantity = 12
	second, err := service.EnsureInventory(7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 12, second.Quantity)
	assert.Len(t, inventoryRepo.inventories, 1)
}

func TestGetInventorySetsStockStatus(t *testing.T) {
	service, inventoryRepo, _, _ := newInventoryServiceForTest(t)
	inventory := inventoryRepo.addInventory(1, 2, 5)

	got, err := service.GetInventoryByID(inventory.ID)
	require.NoError(t, err)
	assert.Equal(t, StockStatusLow, got.StockStatus)

	got, err = service.GetInventoryByProductID(1)
	require.NoError(t, err)
	assert.Equal(t, StockStatusLow, got.StockStatus)
}

func TestGetTransactionsRejectsUnknownType(t *testing.T) {
	service, _, _, _ := newInventoryServiceForTest(t)

	badType := "TRANSFER"
	_, _, err := service.GetTransactions(models.TransactionFilters{TransactionType: &badType})
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}
