package models

import "time"

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// ValidRole: rol enum kontrolü
func ValidRole(r UserRole) bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// LeaveBalances - kullanıcının izin bakiyeleri (gün cinsinden, asla negatif olmaz)
type LeaveBalances struct {
	CL           float64 `gorm:"column:balance_cl;not null;default:0" json:"cl"`
	EL           float64 `gorm:"column:balance_el;not null;default:0" json:"el"`
	SL           float64 `gorm:"column:balance_sl;not null;default:0" json:"sl"`
	WFH          float64 `gorm:"column:balance_wfh;not null;default:0" json:"wfh"`
	Compensatory float64 `gorm:"column:balance_compensatory;not null;default:0" json:"compensatory"`
}

// DefaultLeaveBalances: yeni kayıt olan kullanıcıya verilen bakiyeler
func DefaultLeaveBalances() LeaveBalances {
	return LeaveBalances{CL: 12, EL: 15, SL: 10, WFH: 24, Compensatory: 0}
}

func (b *LeaveBalances) Get(t LeaveType) float64 {
	switch t {
	case LeaveTypeCL:
		return b.CL
	case LeaveTypeEL:
		return b.EL
	case LeaveTypeSL:
		return b.SL
	case LeaveTypeWFH:
		return b.WFH
	case LeaveTypeCompensatory:
		return b.Compensatory
	}
	return 0
}

func (b *LeaveBalances) Set(t LeaveType, v float64) {
	switch t {
	case LeaveTypeCL:
		b.CL = v
	case LeaveTypeEL:
		b.EL = v
	case LeaveTypeSL:
		b.SL = v
	case LeaveTypeWFH:
		b.WFH = v
	case LeaveTypeCompensatory:
		b.Compensatory = v
	}
}

// Map: API cevaplarındaki leave_balances objesi için
func (b *LeaveBalances) Map() map[string]float64 {
	return map[string]float64{
		"cl":           b.CL,
		"el":           b.EL,
		"sl":           b.SL,
		"wfh":          b.WFH,
		"compensatory": b.Compensatory,
	}
}

type User struct {
	ID            uint          `gorm:"primaryKey"`
	Username      string        `gorm:"size:50;uniqueIndex;not null"`
	Email         string        `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash  string        `gorm:"size:255;not null"`
	Role          UserRole      `gorm:"size:20;not null"`
	LeaveBalances LeaveBalances `gorm:"embedded"`
	ManagerID     *uint

	// Profil alanları (hepsi opsiyonel)
	Phone            *string `gorm:"size:30"`
	EmergencyContact *string `gorm:"size:100"`
	EmergencyPhone   *string `gorm:"size:30"`
	Address          *string `gorm:"size:255"`
	Department       *string `gorm:"size:100"`
	Designation      *string `gorm:"size:100"`
	JoiningDate      *string `gorm:"size:10"` // "2025-12-09" formatında
	DateOfBirth      *string `gorm:"size:10"`
	BloodGroup       *string `gorm:"size:10"`
	Skills           string  `gorm:"type:jsonb"` // JSON string array
	Documents        string  `gorm:"type:jsonb"` // {doküman adı: base64 içerik}
	ProfilePhoto     *string `gorm:"type:text"`  // base64 görsel

	CreatedAt time.Time
	UpdatedAt time.Time
}
