package pos

import (
	"fmt"
	"regexp"
	"testing"

	"kasirpos-backend/internal/auth"
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
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.CashMovement{},
	)
	assert.Nil(t, err)

	return db
}

func kasirSession(branchID uint) *auth.Session {
	return &auth.Session{
		UserID:     7,
		UserName:   "Kasir Satu",
		Role:       models.RoleKasir,
		BusinessID: 1,
		BranchID:   &branchID,
	}
}

func TestCheckout(t *testing.T) {
	db := newTestDB(t)

	cabang := models.Branch{BusinessID: 1, Name: "Cabang Timur"}
	assert.Nil(t, db.Create(&cabang).Error)

	p := models.Product{
		BusinessID: 1, BranchID: cabang.ID,
		Name: "Gula 1kg", Barcode: "8991002100010",
		Unit: "pcs", RetailPrice: 15000, MemberPrice1: 14000, Stock: 50,
	}
	assert.Nil(t, db.Create(&p).Error)

	svc := NewService(db)
	sale, err := svc.Checkout(kasirSession(cabang.ID), cabang.ID, &CheckoutRequest{
		Lines:   []CheckoutLine{{ProductID: p.ID, Quantity: 3}},
		Payment: 50000,
		Method:  models.PaymentCash,
	})
	assert.Nil(t, err)
	assert.True(t, regexp.MustCompile(`^INV-\d+$`).MatchString(sale.InvoiceNumber))
	assert.Equal(t, float64(45000), sale.Total)
	assert.Equal(t, float64(5000), sale.Change)
	assert.Len(t, sale.Items, 1)

	// Stok berkurang
	var after models.Product
	assert.Nil(t, db.First(&after, p.ID).Error)
	assert.Equal(t, float64(47), after.Stock)

	// Movement kas "in" sebesar total tertulis otomatis
	var mov models.CashMovement
	assert.Nil(t, db.Where("ref_type = ? AND ref_id = ?", "sale", sale.ID).First(&mov).Error)
	assert.Equal(t, models.CashIn, mov.Direction)
	assert.Equal(t, sale.Total, mov.Amount)
	assert.Equal(t, cabang.ID, mov.BranchID)
}

func TestCheckoutMemberPrice(t *testing.T) {
	db := newTestDB(t)

	cabang := models.Branch{BusinessID: 1, Name: "Cabang Timur"}
	assert.Nil(t, db.Create(&cabang).Error)

	p := models.Product{
		BusinessID: 1, BranchID: cabang.ID,
		Name: "Gula 1kg", Unit: "pcs",
		RetailPrice: 15000, MemberPrice1: 14000, Stock: 10,
	}
	assert.Nil(t, db.Create(&p).Error)

	svc := NewService(db)
	sale, err := svc.Checkout(kasirSession(cabang.ID), cabang.ID, &CheckoutRequest{
		Lines:   []CheckoutLine{{ProductID: p.ID, Quantity: 2, PriceTier: "member1"}},
		Payment: 28000,
		Method:  models.PaymentQRIS,
	})
	assert.Nil(t, err)
	assert.Equal(t, float64(28000), sale.Total)
	assert.Equal(t, float64(14000), sale.Items[0].UnitPrice)
}

func TestCheckoutRejectsInsufficientStockAndPayment(t *testing.T) {
	db := newTestDB(t)

	cabang := models.Branch{BusinessID: 1, Name: "Cabang Timur"}
	assert.Nil(t, db.Create(&cabang).Error)

	p := models.Product{
		BusinessID: 1, BranchID: cabang.ID,
		Name: "Teh Celup", Unit: "box", RetailPrice: 9000, Stock: 2,
	}
	assert.Nil(t, db.Create(&p).Error)

	svc := NewService(db)

	var vErr *ValidationError

	// Stok kurang
	_, err := svc.Checkout(kasirSession(cabang.ID), cabang.ID, &CheckoutRequest{
		Lines:   []CheckoutLine{{ProductID: p.ID, Quantity: 5}},
		Payment: 100000,
		Method:  models.PaymentCash,
	})
	assert.ErrorAs(t, err, &vErr)

	// Pembayaran kurang
	_, err = svc.Checkout(kasirSession(cabang.ID), cabang.ID, &CheckoutRequest{
		Lines:   []CheckoutLine{{ProductID: p.ID, Quantity: 2}},
		Payment: 10000,
		Method:  models.PaymentCash,
	})
	assert.ErrorAs(t, err, &vErr)

	// Keranjang kosong
	_, err = svc.Checkout(kasirSession(cabang.ID), cabang.ID, &CheckoutRequest{
		Payment: 10000,
		Method:  models.PaymentCash,
	})
	assert.ErrorAs(t, err, &vErr)

	// Tidak ada write
	var sales int64
	db.Model(&models.Sale{}).Count(&sales)
	assert.Equal(t, int64(0), sales)

	var after models.Product
	assert.Nil(t, db.First(&after, p.ID).Error)
	assert.Equal(t, float64(2), after.Stock)
}
