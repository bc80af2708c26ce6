package model

import (
	"time"

	"github.com/lib/pq"
)

// ServiceCategories lists the categories a service page can belong to.
var ServiceCategories = []string{
	DepartmentConstruction,
	DepartmentLogistics,
	DepartmentElectricity,
	DepartmentMining,
	"Other",
}

// EditableServiceInfo is the admin-editable part of a service page.
type EditableServiceInfo struct {
	Title       string         `gorm:"type:text;not null" json:"title"`
	Category    string         `gorm:"type:text;default:'Other'" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	Image       string         `gorm:"type:text" json:"image"`
	Icon        string         `gorm:"type:text" json:"icon"`
	Features    pq.StringArray `gorm:"type:text[]" json:"features"`
	Order       int            `gorm:"column:display_order;default:0" json:"order"`
	IsActive    *bool          `gorm:"default:true" json:"isActive"`
}

// Service is a public services page entry.
type Service struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`
	EditableServiceInfo
	Slug      string    `gorm:"type:text;uniqueIndex;<-:create" json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
