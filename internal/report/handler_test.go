package report

import (
	"fmt"
	"testing"
	"time"

	"kasirpos-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.Nil(t, err)

	err = db.AutoMigrate(
		&models.Branch{},
		&models.Sale{},
		&models.SaleItem{},
	)
	assert.Nil(t, err)

	return db
}

func TestSummarizeDailySales(t *testing.T) {
	db := newTestDB(t)

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	sales := []models.Sale{
		{
			BusinessID: 1, BranchID: 1, UserID: 7,
			InvoiceNumber: "INV-1", Date: day.Add(9 * time.Hour),
			Total: 45000, Payment: 50000, Change: 5000, Method: models.PaymentCash,
			Items: []models.SaleItem{
				{ProductID: 1, ProductName: "Gula 1kg", Quantity: 3, UnitPrice: 15000, Subtotal: 45000},
			},
		},
		{
			BusinessID: 1, BranchID: 1, UserID: 7,
			InvoiceNumber: "INV-2", Date: day.Add(14 * time.Hour),
			Total: 18000, Payment: 20000, Change: 2000, Method: models.PaymentQRIS,
			Items: []models.SaleItem{
				{ProductID: 2, ProductName: "Teh Celup", Quantity: 2, UnitPrice: 9000, Subtotal: 18000},
			},
		},
		// Hari lain, tidak boleh ikut terhitung
		{
			BusinessID: 1, BranchID: 1, UserID: 7,
			InvoiceNumber: "INV-3", Date: day.AddDate(0, 0, 1).Add(time.Hour),
			Total: 9000, Payment: 9000, Method: models.PaymentCash,
			Items: []models.SaleItem{
				{ProductID: 2, ProductName: "Teh Celup", Quantity: 1, UnitPrice: 9000, Subtotal: 9000},
			},
		},
		// Cabang lain
		{
			BusinessID: 1, BranchID: 2, UserID: 8,
			InvoiceNumber: "INV-4", Date: day.Add(10 * time.Hour),
			Total: 70000, Payment: 70000, Method: models.PaymentCash,
			Items: []models.SaleItem{
				{ProductID: 3, ProductName: "Beras 5kg", Quantity: 1, UnitPrice: 70000, Subtotal: 70000},
			},
		},
	}
	for i := range sales {
		assert.Nil(t, db.Create(&sales[i]).Error)
	}

	s, err := summarizeDailySales(db, 1, 1, day)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), s.TransactionCount)
	assert.Equal(t, float64(5), s.ItemsSold)
	assert.Equal(t, float64(63000), s.TotalSales)

	// Hari tanpa transaksi: semua nol, tanpa error
	empty, err := summarizeDailySales(db, 1, 1, day.AddDate(0, 0, -1))
	assert.Nil(t, err)
	assert.Equal(t, int64(0), empty.TransactionCount)
	assert.Equal(t, float64(0), empty.ItemsSold)
	assert.Equal(t, float64(0), empty.TotalSales)
}
