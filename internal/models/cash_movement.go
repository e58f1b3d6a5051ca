package models

import "time"

type CashDirection string

const (
	CashIn  CashDirection = "in"
	CashOut CashDirection = "out"
)

// CashMovement: buku kas per cabang. Penjualan kasir otomatis
// menulis movement "in"; pengeluaran manual ditulis lewat endpoint kas.
type CashMovement struct {
	ID          uint `gorm:"primaryKey"`
	BusinessID  uint `gorm:"index;not null"`
	BranchID    uint `gorm:"index;not null"`
	Branch      Branch
	Date        time.Time     `gorm:"index;not null"` // per hari
	Direction   CashDirection `gorm:"size:10;not null"`
	Amount      float64       `gorm:"not null"`
	Description string        `gorm:"size:255"`
	RefType     string        `gorm:"size:30"` // "sale" jika dari checkout
	RefID       uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
