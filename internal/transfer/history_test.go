package transfer

import (
	"testing"
	"time"

	"kasirpos-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestListHistoryFilterAndOrder(t *testing.T) {
	db := newTestDB(t)

	day1 := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	rows := []models.TransferHistory{
		{BusinessID: 1, TransferNumber: "TRF-1001", ProductID: 1, ProductName: "Gula 1kg", Quantity: 5, UnitPrice: 15000, Total: 75000, SourceBranchID: 1, DestBranchID: 2, CreatedAt: day1},
		{BusinessID: 1, TransferNumber: "TRF-1002", ProductID: 2, ProductName: "Kopi Sachet", Quantity: 10, UnitPrice: 1500, Total: 15000, SourceBranchID: 2, DestBranchID: 3, CreatedAt: day1.Add(2 * time.Hour)},
		{BusinessID: 1, TransferNumber: "TRF-1003", ProductID: 3, ProductName: "Teh Celup", Quantity: 3, UnitPrice: 9000, Total: 27000, SourceBranchID: 3, DestBranchID: 1, CreatedAt: day2},
	}
	for i := range rows {
		assert.Nil(t, db.Create(&rows[i]).Error)
	}

	svc := NewService(db)

	// Tanpa filter: semua entri, terbaru dulu
	all, err := svc.ListHistory(1, nil)
	assert.Nil(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "TRF-1003", all[0].TransferNumber)
	assert.Equal(t, "TRF-1002", all[1].TransferNumber)
	assert.Equal(t, "TRF-1001", all[2].TransferNumber)

	// Filter cabang 1: cocok sebagai asal ATAU tujuan
	branchID := uint(1)
	filtered, err := svc.ListHistory(1, &branchID)
	assert.Nil(t, err)
	assert.Len(t, filtered, 2)
	for _, e := range filtered {
		assert.True(t, e.SourceBranchID == branchID || e.DestBranchID == branchID)
	}

	// Cabang 2 hanya terlibat di dua entri pertama
	branchID = 2
	filtered, err = svc.ListHistory(1, &branchID)
	assert.Nil(t, err)
	assert.Len(t, filtered, 2)

	// Cabang tak dikenal: kosong
	branchID = 99
	filtered, err = svc.ListHistory(1, &branchID)
	assert.Nil(t, err)
	assert.Len(t, filtered, 0)
}

func TestListHistoryBatchNumbersGroupByDate(t *testing.T) {
	db := newTestDB(t)

	day1 := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)

	rows := []models.TransferHistory{
		{BusinessID: 1, TransferNumber: "TRF-2001", ProductID: 1, ProductName: "A", Quantity: 1, SourceBranchID: 1, DestBranchID: 2, CreatedAt: day1},
		{BusinessID: 1, TransferNumber: "TRF-2002", ProductID: 2, ProductName: "B", Quantity: 1, SourceBranchID: 1, DestBranchID: 2, CreatedAt: day1.Add(time.Hour)},
		{BusinessID: 1, TransferNumber: "TRF-2003", ProductID: 3, ProductName: "C", Quantity: 1, SourceBranchID: 1, DestBranchID: 2, CreatedAt: day2},
	}
	for i := range rows {
		assert.Nil(t, db.Create(&rows[i]).Error)
	}

	svc := NewService(db)
	entries, err := svc.ListHistory(1, nil)
	assert.Nil(t, err)
	assert.Len(t, entries, 3)

	// Terbaru dulu: entri day2 dapat BATCH-1, dua entri day1 berbagi BATCH-2
	assert.Equal(t, "BATCH-1", entries[0].BatchNumber)
	assert.Equal(t, "BATCH-2", entries[1].BatchNumber)
	assert.Equal(t, "BATCH-2", entries[2].BatchNumber)
}

func TestListHistoryScopedToBusiness(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	assert.Nil(t, db.Create(&models.TransferHistory{BusinessID: 1, TransferNumber: "TRF-3001", ProductID: 1, ProductName: "A", Quantity: 1, SourceBranchID: 1, DestBranchID: 2, CreatedAt: now}).Error)
	assert.Nil(t, db.Create(&models.TransferHistory{BusinessID: 2, TransferNumber: "TRF-3002", ProductID: 1, ProductName: "A", Quantity: 1, SourceBranchID: 1, DestBranchID: 2, CreatedAt: now}).Error)

	svc := NewService(db)
	entries, err := svc.ListHistory(1, nil)
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "TRF-3001", entries[0].TransferNumber)
}
