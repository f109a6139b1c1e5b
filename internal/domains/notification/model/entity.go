package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notification is an in-app inbox entry
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Link      *string    `json:"link,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}

const (
	NotificationTypeCourseCreated = "course_created"
	NotificationTypeSystem        = "system"
)

// CourseCreated is published after a course has been stored
type CourseCreated struct {
	CourseID   int64
	Name       string
	Price      decimal.Decimal
	Capacity   int
	StartDate  time.Time
	EndDate    time.Time
	OccurredAt time.Time
}

// InboxPage is the body of GET /notifications
type InboxPage struct {
	Notifications []Notification `json:"notifications"`
	Unread        int            `json:"unread"`
}
