package models

import "time"

type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityNormal AnnouncementPriority = "normal"
	PriorityHigh   AnnouncementPriority = "high"
	PriorityUrgent AnnouncementPriority = "urgent"
)

func ValidPriority(p AnnouncementPriority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Announcement struct {
	ID       uint                 `gorm:"primaryKey"`
	Title    string               `gorm:"size:200;not null"`
	Content  string               `gorm:"type:text;not null"`
	Priority AnnouncementPriority `gorm:"size:20;not null"`

	// Hedef roller JSON string array olarak tutulur; boşsa herkese görünür
	TargetRoles string `gorm:"type:jsonb"`

	CreatedBy uint `gorm:"not null"`
	IsActive  bool `gorm:"not null;default:true;index"` // soft delete: false yapılır, kayıt silinmez

	CreatedAt time.Time
	UpdatedAt time.Time
}
