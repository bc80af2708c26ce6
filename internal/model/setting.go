package model

import "time"

// Setting is one key-value entry of the site settings store. Values are kept
// as text; the Type field tells the dashboard how to render and parse them.
type Setting struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key         string    `gorm:"type:text;uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"type:text" json:"value"`
	Type        string    `gorm:"type:text;default:'text'" json:"type"`
	Group       string    `gorm:"column:setting_group;type:text;default:'general'" json:"group"`
	Label       string    `gorm:"type:text" json:"label"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
