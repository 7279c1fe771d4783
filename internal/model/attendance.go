package model

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
	StatusLeave   = "leave"
	StatusHoliday = "holiday"
)

const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
	ShiftNight   = "night"
)

// Attendance is one row per (user, calendar day). The composite unique
// index also closes the concurrent double check-in race at the store:
// the second insert fails on the key instead of creating a twin row.
type Attendance struct {
	gorm.Model
	UserID uint      `json:"userId" gorm:"uniqueIndex:idx_user_date;not null"`
	User   *User     `json:"user,omitempty"`
	Date   time.Time `json:"date" gorm:"uniqueIndex:idx_user_date;not null"` // normalized to local midnight

	CheckInTime *time.Time `json:"checkInTime"`
	CheckInLat  float64    `json:"checkInLat"`
	CheckInLng  float64    `json:"checkInLng"`

	CheckOutTime *time.Time `json:"checkOutTime"`
	CheckOutLat  float64    `json:"checkOutLat"`
	CheckOutLng  float64    `json:"checkOutLng"`

	Status       string  `json:"status" gorm:"type:varchar(20);default:'absent'"`
	Shift        string  `json:"shift" gorm:"type:varchar(20);not null"`
	WorkHours    float64 `json:"workHours"`
	Notes        string  `json:"notes"`
	ApprovedByID *uint   `json:"approvedBy"`
}

// BeforeSave recomputes work hours whenever both timestamps are present:
// checkOut minus checkIn in hours, rounded to two decimals.
func (a *Attendance) BeforeSave(tx *gorm.DB) error {
	if a.CheckInTime != nil && a.CheckOutTime != nil {
		hours := a.CheckOutTime.Sub(*a.CheckInTime).Hours()
		a.WorkHours = math.Round(hours*100) / 100
	}
	return nil
}

// IsLate reports whether a present record counts as late on dashboards:
// check-in local hour at or past 9. Derived, never stored.
func (a *Attendance) IsLate() bool {
	if a.CheckInTime == nil {
		return false
	}
	return a.Status == StatusPresent && a.CheckInTime.Local().Hour() >= 9
}

// DayOf normalizes a timestamp to local midnight, the per-day record key.
func DayOf(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidStatus reports whether s is an allowed attendance status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave, StatusHoliday:
		return true
	}
	return false
}

// ValidShift reports whether s is an allowed shift.
func ValidShift(s string) bool {
	switch s {
	case ShiftMorning, ShiftEvening, ShiftNight:
		return true
	}
	return false
}
