package model

import "time"

// Contact submission statuses. As with applications there is no transition
// table: admins may move a submission between any of the three states.
const (
	ContactStatusUnread  = "unread"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ContactStatuses lists every valid contact submission status.
var ContactStatuses = []string{
	ContactStatusUnread,
	ContactStatusRead,
	ContactStatusReplied,
}

// ContactSubmission is a message sent through the public contact form.
// IP address and user agent are captured best-effort for abuse tracing.
type ContactSubmission struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:text;not null" json:"name"`
	Email   string `gorm:"type:text;not null" json:"email"`
	Phone   string `gorm:"type:text" json:"phone"`
	Service string `gorm:"type:text" json:"service"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status    string `gorm:"type:text;default:'unread'" json:"status"`
	IPAddress string `gorm:"type:text" json:"ipAddress"`
	UserAgent string `gorm:"type:text" json:"userAgent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
