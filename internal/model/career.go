package model

import (
	"time"

	"github.com/lib/pq"
)

// Departments a career posting can belong to
const (
	DepartmentConstruction = "Construction"
	DepartmentLogistics    = "Logistics"
	DepartmentElectricity  = "Electricity"
	DepartmentMining       = "Mining"
	DepartmentCorporate    = "Corporate"
)

// Employment types
const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeInternship = "Internship"
	TypeTemporary  = "Temporary"
)

// Departments lists every valid career department.
var Departments = []string{
	DepartmentConstruction,
	DepartmentLogistics,
	DepartmentElectricity,
	DepartmentMining,
	DepartmentCorporate,
}

// EmploymentTypes lists every valid employment type.
var EmploymentTypes = []string{
	TypeFullTime,
	TypePartTime,
	TypeContract,
	TypeInternship,
	TypeTemporary,
}

// SalaryRange is the optional salary block embedded in a career posting.
type SalaryRange struct {
	Min      uint   `json:"min"`
	Max      uint   `json:"max"`
	Currency string `gorm:"type:text;default:'USD'" json:"currency"`
	Period   string `gorm:"type:text;default:'year'" json:"period"`
}

// EditableCareerInfo is the part of a career posting that admins can edit.
// Slug and counters live on Career itself and never come from a request body.
type EditableCareerInfo struct {
	Title            string         `gorm:"type:text;not null" json:"title"`
	Department       string         `gorm:"type:text" json:"department"`
	Location         string         `gorm:"type:text" json:"location"`
	Type             string         `gorm:"type:text" json:"type"`
	Experience       string         `gorm:"type:text" json:"experience"`
	Description      string         `gorm:"type:text" json:"description"`
	Responsibilities pq.StringArray `gorm:"type:text[]" json:"responsibilities"`
	Requirements     pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Qualifications   pq.StringArray `gorm:"type:text[]" json:"qualifications"`
	Benefits         pq.StringArray `gorm:"type:text[]" json:"benefits"`
	Salary           SalaryRange    `gorm:"embedded;embeddedPrefix:salary_" json:"salary"`
	Deadline         time.Time      `gorm:"type:timestamp" json:"deadline"`
	IsActive         *bool          `gorm:"default:true" json:"isActive"`
}

// Career is the gorm model for a job posting.
// Slug is derived from the title at creation time and immutable afterwards:
// title edits do not cascade to the slug so published links keep working.
type Career struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`
	EditableCareerInfo
	Slug         string    `gorm:"type:text;uniqueIndex;<-:create" json:"slug"`
	Views        uint      `gorm:"default:0" json:"views"`
	Applications uint      `gorm:"default:0" json:"applications"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CareerSummary is the minimal projection joined onto application listings.
type CareerSummary struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Location   string `json:"location"`
}

// Summary returns the minimal projection of a career posting.
func (c *Career) Summary() CareerSummary {
	return CareerSummary{
		ID:         c.ID,
		Title:      c.Title,
		Department: c.Department,
		Location:   c.Location,
	}
}

// Active reports whether the posting is publicly visible.
func (c *Career) Active() bool {
	return c.IsActive == nil || *c.IsActive
}
