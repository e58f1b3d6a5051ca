package models

import "time"

const TransferStatusPending = "pending"

// Transfer: satu baris per produk yang dipindahkan antar cabang.
// Status ditulis sekali saat dibuat dan tidak pernah berubah.
type Transfer struct {
	ID             uint `gorm:"primaryKey"`
	BusinessID     uint `gorm:"index;not null"`
	ProductID      uint `gorm:"index;not null"`
	Product        Product
	SourceBranchID uint `gorm:"index;not null"`
	SourceBranch   Branch `gorm:"foreignKey:SourceBranchID"`
	DestBranchID   uint   `gorm:"index;not null"`
	DestBranch     Branch `gorm:"foreignKey:DestBranchID"`
	Quantity       float64 `gorm:"not null"`
	Status         string  `gorm:"size:20;not null;default:pending"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransferHistory: catatan audit denormalisasi, write-once, hanya
// untuk tampilan riwayat. Tidak pernah dibaca balik oleh executor.
type TransferHistory struct {
	ID             uint   `gorm:"primaryKey"`
	BusinessID     uint   `gorm:"index;not null"`
	TransferNumber string `gorm:"size:50;index;not null"` // "TRF-<epoch ms>"
	ProductID      uint   `gorm:"index;not null"`
	ProductName    string `gorm:"size:100;not null"`
	Quantity       float64 `gorm:"not null"`
	UnitPrice      float64 `gorm:"not null"`
	Total          float64 `gorm:"not null"` // Quantity * UnitPrice
	SourceBranchID uint    `gorm:"index;not null"`
	DestBranchID   uint    `gorm:"index;not null"`
	CreatedAt      time.Time `gorm:"index"`
}
