package models

import "time"

type UserRole string

const (
	RoleOwner       UserRole = "owner"
	RoleBranchAdmin UserRole = "branch_admin"
	RoleKasir       UserRole = "kasir"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	BusinessID   uint `gorm:"index"`
	BranchID     *uint
	Branch       *Branch
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
