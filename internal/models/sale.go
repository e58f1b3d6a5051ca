package models

import "time"

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentDebit PaymentMethod = "debit"
	PaymentQRIS  PaymentMethod = "qris"
)

// Sale: satu transaksi kasir (checkout keranjang).
type Sale struct {
	ID            uint `gorm:"primaryKey"`
	BusinessID    uint `gorm:"index;not null"`
	BranchID      uint `gorm:"index;not null"`
	Branch        Branch
	UserID        uint          `gorm:"not null"` // kasir yang melayani
	InvoiceNumber string        `gorm:"size:50;uniqueIndex;not null"` // "INV-<epoch ms>"
	Date          time.Time     `gorm:"index;not null"`
	Total         float64       `gorm:"not null"`
	Payment       float64       `gorm:"not null"` // uang diterima
	Change        float64       `gorm:"not null"` // kembalian
	Method        PaymentMethod `gorm:"size:20;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

type SaleItem struct {
	ID          uint `gorm:"primaryKey"`
	SaleID      uint `gorm:"index;not null"`
	ProductID   uint `gorm:"index;not null"`
	ProductName string  `gorm:"size:100;not null"` // denormalisasi, harga saat transaksi
	Quantity    float64 `gorm:"not null"`
	UnitPrice   float64 `gorm:"not null"`
	Subtotal    float64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
