package models

import "time"

// Product: satu baris per cabang. Produk yang sama di cabang lain
// adalah baris terpisah dengan barcode yang sama.
type Product struct {
	ID           uint   `gorm:"primaryKey"`
	BusinessID   uint   `gorm:"index;not null"`
	BranchID     uint   `gorm:"index;not null"`
	Branch       Branch
	CategoryID   *uint
	Category     *Category
	Name         string  `gorm:"size:100;not null"`
	Barcode      string  `gorm:"size:50;index"` // bisa kosong
	Unit         string  `gorm:"size:20;not null"` // pcs, kg, dus dst.
	CostPrice    float64 `gorm:"not null"`
	RetailPrice  float64 `gorm:"not null"`
	MemberPrice1 float64
	MemberPrice2 float64
	Stock        float64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
