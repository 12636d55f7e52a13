package models

import "time"

// StatusCheck - public durum kontrolü kaydı (uptime izleme için)
type StatusCheck struct {
	ID         string    `gorm:"primaryKey;size:36"` // uuid
	ClientName string    `gorm:"size:100;not null"`
	Timestamp  time.Time `gorm:"not null"`
}
