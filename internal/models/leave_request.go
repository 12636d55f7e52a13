package models

import "time"

type LeaveType string

const (
	LeaveTypeCL           LeaveType = "cl"  // casual leave
	LeaveTypeEL           LeaveType = "el"  // earned leave
	LeaveTypeSL           LeaveType = "sl"  // sick leave
	LeaveTypeWFH          LeaveType = "wfh" // work from home
	LeaveTypeCompensatory LeaveType = "compensatory"
)

func ValidLeaveType(t LeaveType) bool {
	switch t {
	case LeaveTypeCL, LeaveTypeEL, LeaveTypeSL, LeaveTypeWFH, LeaveTypeCompensatory:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"index;not null"`
	LeaveType  LeaveType `gorm:"size:20;not null"`
	StartDate  string    `gorm:"size:10;not null"` // "2025-12-09" formatında
	EndDate    string    `gorm:"size:10;not null"`
	DaysCount  float64   `gorm:"not null"` // dahil gün sayısı: (end - start) + 1
	Reason     string    `gorm:"size:500"`

	// Durum sadece pending -> approved / rejected yönünde, bir kez değişir
	Status       LeaveStatus `gorm:"size:20;not null;index"`
	AppliedDate  time.Time   `gorm:"not null;index"`
	ReviewedBy   *uint
	ReviewedDate *time.Time
	Comments     *string `gorm:"size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
