package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceAbsent  AttendanceStatus = "absent"
)

type AttendanceRecord struct {
	ID         uint   `gorm:"primaryKey"`
	EmployeeID uint   `gorm:"not null;uniqueIndex:ux_attendance_employee_date"`
	Date       string `gorm:"size:10;not null;uniqueIndex:ux_attendance_employee_date;index"` // gün bazlı, "2025-12-09"

	CheckIn   time.Time `gorm:"not null"`
	CheckOut  *time.Time
	WorkHours *float64 // check-out'ta hesaplanır, 2 ondalık

	Status AttendanceStatus `gorm:"size:20;not null"`
	Notes  *string          `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
