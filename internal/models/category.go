package models

import "time"

type Category struct {
	ID         uint   `gorm:"primaryKey"`
	BusinessID uint   `gorm:"index;not null"`
	Name       string `gorm:"size:100;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
