package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a guest-book entry. Rows are insert-only: the API never
// updates or deletes them.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GuestName string    `gorm:"column:guest_name;not null" json:"guest_name"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index" json:"timestamp"`
}

func (Comment) TableName() string {
	return "comments"
}
