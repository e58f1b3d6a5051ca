package models

import "time"

// BusinessProfile: pelaku usaha (tenant). Semua cabang, produk dan
// transaksi ter-scope ke satu business.
type BusinessProfile struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerUserID uint   `gorm:"index;not null"`
	Name        string `gorm:"size:100;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
