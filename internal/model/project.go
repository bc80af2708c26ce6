package model

import (
	"time"

	"github.com/lib/pq"
)

// ProjectImage is one gallery entry on a portfolio project.
type ProjectImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ProjectID uint   `gorm:"not null;index" json:"-"`
	URL       string `gorm:"type:text" json:"url"`
	PublicID  string `gorm:"type:text" json:"public_id"`
}

// Testimonial is the optional client quote attached to a project.
type Testimonial struct {
	ClientName     string `gorm:"type:text" json:"clientName"`
	ClientPosition string `gorm:"type:text" json:"clientPosition"`
	Content        string `gorm:"type:text" json:"content"`
	Rating         uint   `json:"rating"`
}

// EditableProjectInfo is the admin-editable part of a portfolio project.
type EditableProjectInfo struct {
	Title         string         `gorm:"type:text;not null" json:"title"`
	Client        string         `gorm:"type:text" json:"client"`
	Location      string         `gorm:"type:text" json:"location"`
	Category      string         `gorm:"type:text" json:"category"`
	Description   string         `gorm:"type:text" json:"description"`
	Challenge     string         `gorm:"type:text" json:"challenge"`
	Solution      string         `gorm:"type:text" json:"solution"`
	Results       pq.StringArray `gorm:"type:text[]" json:"results"`
	FeaturedImage string         `gorm:"type:text" json:"featuredImage"`
	StartDate     *time.Time     `gorm:"type:timestamp" json:"startDate,omitempty"`
	EndDate       *time.Time     `gorm:"type:timestamp" json:"endDate,omitempty"`
	ProjectValue  string         `gorm:"type:text" json:"projectValue"`
	Featured      bool           `gorm:"default:false" json:"featured"`
	Completed     *bool          `gorm:"default:true" json:"completed"`
	Testimonial   Testimonial    `gorm:"embedded;embeddedPrefix:testimonial_" json:"testimonial"`
	IsActive      *bool          `gorm:"default:true" json:"isActive"`
}

// Project is a portfolio entry.
type Project struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`
	EditableProjectInfo
	Slug      string         `gorm:"type:text;uniqueIndex;<-:create" json:"slug"`
	Images    []ProjectImage `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
