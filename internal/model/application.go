package model

import (
	"time"

	"github.com/lib/pq"
)

// Application statuses. Transitions are intentionally unrestricted: any status
// may follow any other, including re-selecting the current one.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

// ApplicationStatuses lists every valid application status.
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
	ApplicationStatusHired,
}

// ResumeRef points at the uploaded resume on the media host. The upload itself
// happens before submission; the workflow only stores and validates the reference.
type ResumeRef struct {
	URL      string `gorm:"type:text" json:"url"`
	PublicID string `gorm:"type:text" json:"public_id"`
	Filename string `gorm:"type:text" json:"filename"`
}

// Application represents a candidate submission against a career posting.
//
// CareerID is a weak reference: no foreign key constraint is created, so
// deleting a career leaves its applications behind with a dangling id. The
// read path joins the career manually and renders a null projection when the
// target is gone. The composite unique index on (career_id, email) enforces
// one submission per email per posting at the storage layer.
type Application struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	CareerID uint `gorm:"not null;uniqueIndex:idx_applications_career_email,priority:1;index" json:"careerId"`

	FirstName string `gorm:"type:text" json:"firstName"`
	LastName  string `gorm:"type:text" json:"lastName"`
	// Stored lowercased so the uniqueness index is case-insensitive in effect.
	Email  string    `gorm:"type:text;uniqueIndex:idx_applications_career_email,priority:2" json:"email"`
	Phone  string    `gorm:"type:text" json:"phone"`
	Resume ResumeRef `gorm:"embedded;embeddedPrefix:resume_" json:"resume"`

	CoverLetter    string         `gorm:"type:text" json:"coverLetter"`
	Experience     int            `gorm:"default:0" json:"experience"`
	Qualifications pq.StringArray `gorm:"type:text[]" json:"qualifications"`
	ExpectedSalary string         `gorm:"type:text" json:"expectedSalary"`
	StartDate      *time.Time     `gorm:"type:timestamp" json:"startDate,omitempty"`
	Notes          string         `gorm:"type:text" json:"notes"`

	Status    string    `gorm:"type:text;default:'pending'" json:"status"`
	AppliedAt time.Time `gorm:"type:timestamp" json:"appliedAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Filled by the read path, never persisted.
	Career *CareerSummary `gorm:"-" json:"career"`
}
