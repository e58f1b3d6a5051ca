package models

import "time"

type Branch struct {
	ID         uint   `gorm:"primaryKey"`
	BusinessID uint   `gorm:"index;not null"`
	Name       string `gorm:"size:100;not null"`
	Address    string `gorm:"size:255"`
	Phone      string `gorm:"size:50"`       // Opsional
	IsCentral  bool   `gorm:"default:false"` // cabang pusat (sumber stok)
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Users []User
}
