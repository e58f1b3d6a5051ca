package kas

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
		&models.CashMovement{},
	)
	assert.Nil(t, err)

	return db
}

func TestApplyPeriodFilter(t *testing.T) {
	db := newTestDB(t)

	seed := []models.CashMovement{
		{BusinessID: 1, BranchID: 1, Date: time.Date(2026, 7, 10, 0, 0, 0, 0, time.Local), Direction: models.CashIn, Amount: 10000, Description: "Juli"},
		{BusinessID: 1, BranchID: 1, Date: time.Date(2026, 8, 5, 0, 0, 0, 0, time.Local), Direction: models.CashOut, Amount: 4000, Description: "Agustus"},
		{BusinessID: 1, BranchID: 1, Date: time.Date(2025, 12, 20, 0, 0, 0, 0, time.Local), Direction: models.CashIn, Amount: 7000, Description: "Tahun lalu"},
	}
	for i := range seed {
		assert.Nil(t, db.Create(&seed[i]).Error)
	}

	list := func(yearStr, monthStr string) ([]models.CashMovement, error) {
		q := db.Where("branch_id = ? AND business_id = ?", 1, 1)
		q, err := applyPeriodFilter(q, yearStr, monthStr)
		if err != nil {
			return nil, err
		}
		var movs []models.CashMovement
		err = q.Find(&movs).Error
		return movs, err
	}

	// Tanpa periode: semua
	movs, err := list("", "")
	assert.Nil(t, err)
	assert.Len(t, movs, 3)

	// year saja: satu tahun penuh
	movs, err = list("2026", "")
	assert.Nil(t, err)
	assert.Len(t, movs, 2)

	// year + month: satu bulan
	movs, err = list("2026", "8")
	assert.Nil(t, err)
	assert.Len(t, movs, 1)
	assert.Equal(t, "Agustus", movs[0].Description)

	// month di luar jangkauan ditolak
	_, err = list("2026", "13")
	assert.NotNil(t, err)

	// year bukan angka ditolak
	_, err = list("abc", "")
	assert.NotNil(t, err)
}
