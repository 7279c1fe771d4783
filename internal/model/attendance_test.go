package model

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Attendance{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestWorkHoursRecomputedOnSave(t *testing.T) {
	db := openDB(t)

	checkIn := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	checkOut := checkIn.Add(2*time.Hour + 30*time.Minute)

	att := &Attendance{
		UserID:       1,
		Date:         DayOf(checkIn),
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
		Status:       StatusPresent,
		Shift:        ShiftMorning,
	}
	if err := db.Create(att).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	var stored Attendance
	if err := db.First(&stored, att.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.WorkHours != 2.5 {
		t.Errorf("expected 2.5 work hours, got %v", stored.WorkHours)
	}
}

func TestWorkHoursRounding(t *testing.T) {
	checkIn := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	checkOut := checkIn.Add(7*time.Hour + 50*time.Minute) // 7.8333... hours

	att := &Attendance{CheckInTime: &checkIn, CheckOutTime: &checkOut}
	if err := att.BeforeSave(nil); err != nil {
		t.Fatalf("before save: %v", err)
	}
	if att.WorkHours != 7.83 {
		t.Errorf("expected 7.83, got %v", att.WorkHours)
	}
}

func TestWorkHoursNotComputedWithoutCheckOut(t *testing.T) {
	checkIn := time.Now()
	att := &Attendance{CheckInTime: &checkIn}
	if err := att.BeforeSave(nil); err != nil {
		t.Fatalf("before save: %v", err)
	}
	if att.WorkHours != 0 {
		t.Errorf("expected 0, got %v", att.WorkHours)
	}
}

// A second row for the same user and day must hit the unique key.
func TestOneRecordPerUserPerDay(t *testing.T) {
	db := openDB(t)

	day := DayOf(time.Now())
	first := &Attendance{UserID: 1, Date: day, Status: StatusPresent, Shift: ShiftMorning}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("first create: %v", err)
	}
	twin := &Attendance{UserID: 1, Date: day, Status: StatusPresent, Shift: ShiftMorning}
	if err := db.Create(twin).Error; err == nil {
		t.Fatal("expected unique constraint violation for same (user, date)")
	}

	// A different day for the same user is fine
	next := &Attendance{UserID: 1, Date: day.AddDate(0, 0, 1), Status: StatusPresent, Shift: ShiftMorning}
	if err := db.Create(next).Error; err != nil {
		t.Fatalf("next day create: %v", err)
	}
}

func TestIsLate(t *testing.T) {
	early := time.Date(2026, 8, 31, 8, 59, 0, 0, time.Local)
	late := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		att  Attendance
		want bool
	}{
		{"on time", Attendance{Status: StatusPresent, CheckInTime: &early}, false},
		{"nine o'clock", Attendance{Status: StatusPresent, CheckInTime: &late}, true},
		{"late but on leave", Attendance{Status: StatusLeave, CheckInTime: &late}, false},
		{"no check-in", Attendance{Status: StatusPresent}, false},
	}
	for _, tc := range cases {
		if got := tc.att.IsLate(); got != tc.want {
			t.Errorf("%s: IsLate() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2026, 8, 31, 15, 42, 7, 123, time.Local)
	day := DayOf(ts)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 || day.Nanosecond() != 0 {
		t.Errorf("DayOf did not normalize to midnight: %v", day)
	}
	if day.Year() != 2026 || day.Month() != time.August || day.Day() != 31 {
		t.Errorf("DayOf changed the calendar day: %v", day)
	}
}
