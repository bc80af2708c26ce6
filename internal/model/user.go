package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the only role the dashboard knows about today.
const RoleAdmin = "admin"

// User is a dashboard account. Public visitors never get one; the table only
// holds content editors.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username  string     `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	Email     string     `gorm:"type:text" json:"email"`
	Role      string     `gorm:"type:text;default:'admin'" json:"role"`
	IsActive  *bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `gorm:"type:timestamp" json:"lastLogin,omitempty"`
}
