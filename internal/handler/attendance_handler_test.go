package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"gorm.io/gorm"

	"attendfy-backend/internal/model"
)

func TestCheckInTwiceRejected(t *testing.T) {
	app, db := setupTestApp(t)
	emp := createUser(t, db, model.RoleEmployee, "emp@test.local", "EMP001", nil)
	token := tokenFor(t, emp)

	resp := doJSON(t, app, http.MethodPost, "/api/attendance/check-in", token, map[string]interface{}{
		"coordinates": []float64{100.37, -0.94},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first check-in: expected 200 got %d", resp.StatusCode)
	}
	var att model.Attendance
	decodeBody(t, resp, &att)
	if att.CheckInTime == nil || att.Status != model.StatusPresent {
		t.Fatalf("unexpected record after check-in: %+v", att)
	}
	if att.CheckInLat != -0.94 || att.CheckInLng != 100.37 {
		t.Errorf("coordinates not stored: %+v", att)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/attendance/check-in", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("second check-in: expected 400 got %d", resp.StatusCode)
	}
	if msg := messageOf(t, resp); msg != "Already checked in today" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCheckOutStateMachine(t *testing.T) {
	app, db := setupTestApp(t)
	emp := createUser(t, db, model.RoleEmployee, "emp@test.local", "EMP001", nil)
	token := tokenFor(t, emp)

	// Check-out before check-in
	resp := doJSON(t, app, http.MethodPost, "/api/attendance/check-out", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
	if msg := messageOf(t, resp); msg != "No check-in found for today" {
		t.Errorf("unexpected message %q", msg)
	}

	doJSON(t, app, http.MethodPost, "/api/attendance/check-in", token, nil)

	resp = doJSON(t, app, http.MethodPost, "/api/attendance/check-out", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check-out: expected 200 got %d", resp.StatusCode)
	}
	var att model.Attendance
	decodeBody(t, resp, &att)
	if att.CheckOutTime == nil {
		t.Fatal("expected check-out time to be set")
	}

	// Second check-out
	resp = doJSON(t, app, http.MethodPost, "/api/attendance/check-out", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
	if msg := messageOf(t, resp); msg != "Already checked out today" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestCheckInInvalidShift(t *testing.T) {
	app, db := setupTestApp(t)
	emp := createUser(t, db, model.RoleEmployee, "emp@test.local", "EMP001", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/attendance/check-in", tokenFor(t, emp), map[string]string{
		"shift": "graveyard",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}

func TestListScopedToOwnRecordsForEmployees(t *testing.T) {
	app, db := setupTestApp(t)
	emp := createUser(t, db, model.RoleEmployee, "emp@test.local", "EMP001", nil)
	other := createUser(t, db, model.RoleEmployee, "other@test.local", "EMP002", nil)
	hr := createUser(t, db, model.RoleHRManager, "hr@test.local", "HRM001", nil)

	seedAttendance(t, db, emp.ID, model.DayOf(time.Now()), 8)
	seedAttendance(t, db, other.ID, model.DayOf(time.Now()), 10)

	resp := doJSON(t, app, http.MethodGet, "/api/attendance/", tokenFor(t, emp), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var mine []model.Attendance
	decodeBody(t, resp, &mine)
	if len(mine) != 1 || mine[0].UserID != emp.ID {
		t.Fatalf("employee should only see their own records, got %+v", mine)
	}

	// HR sees everything and may filter by user
	resp = doJSON(t, app, http.MethodGet, "/api/attendance/", tokenFor(t, hr), nil)
	var all []model.Attendance
	decodeBody(t, resp, &all)
	if len(all) != 2 {
		t.Fatalf("hr should see all records, got %d", len(all))
	}

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/attendance/?userId=%d", other.ID), tokenFor(t, hr), nil)
	var filtered []model.Attendance
	decodeBody(t, resp, &filtered)
	if len(filtered) != 1 || filtered[0].UserID != other.ID {
		t.Fatalf("user filter broken, got %+v", filtered)
	}
}

func TestUpdateAttendanceHRGate(t *testing.T) {
	app, db := setupTestApp(t)
	emp := createUser(t, db, model.RoleEmployee, "emp@test.local", "EMP001", nil)
	hr := createUser(t, db, model.RoleHRManager, "hr@test.local", "HRM001", nil)

	att := seedAttendance(t, db, emp.ID, model.DayOf(time.Now()), 8)

	// Employees cannot edit the ledger
	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/attendance/%d", att.ID), tokenFor(t, emp), map[string]string{
		"date": "2026-08-30", "shift": "evening", "status": "leave",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("employee edit: expected 403 got %d", resp.StatusCode)
	}

	// Invalid enum values are rejected with field errors
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/attendance/%d", att.ID), tokenFor(t, hr), map[string]string{
		"date": "2026-08-30", "shift": "afternoon", "status": "leave",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid shift: expected 400 got %d", resp.StatusCode)
	}

	// HR edit stamps the approver
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/attendance/%d", att.ID), tokenFor(t, hr), map[string]string{
		"date": "2026-08-30", "shift": "evening", "status": "leave", "notes": "sick leave",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("hr edit: expected 200 got %d", resp.StatusCode)
	}
	var updated model.Attendance
	decodeBody(t, resp, &updated)
	if updated.Status != model.StatusLeave || updated.Shift != model.ShiftEvening {
		t.Errorf("fields not applied: %+v", updated)
	}
	if updated.ApprovedByID == nil || *updated.ApprovedByID != hr.ID {
		t.Errorf("approver not stamped: %v", updated.ApprovedByID)
	}

	// Unknown id
	resp = doJSON(t, app, http.MethodPut, "/api/attendance/99999", tokenFor(t, hr), map[string]string{
		"date": "2026-08-30", "shift": "evening", "status": "leave",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404 got %d", resp.StatusCode)
	}
}

func TestSummaryBucketsByStatus(t *testing.T) {
	app, db := setupTestApp(t)
	emp1 := createUser(t, db, model.RoleEmployee, "e1@test.local", "EMP001", nil)
	emp2 := createUser(t, db, model.RoleEmployee, "e2@test.local", "EMP002", nil)
	hr := createUser(t, db, model.RoleHRManager, "hr@test.local", "HRM001", nil)

	today := model.DayOf(time.Now())
	seedAttendance(t, db, emp1.ID, today, 8)
	seedAttendance(t, db, emp2.ID, today, 8)
	leave := seedAttendance(t, db, emp1.ID, today.AddDate(0, 0, -1), 8)
	db.Model(leave).Update("status", model.StatusLeave)

	resp := doJSON(t, app, http.MethodGet, "/api/attendance/summary", tokenFor(t, hr), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	var buckets []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
		Users  []uint `json:"users"`
	}
	decodeBody(t, resp, &buckets)

	byStatus := map[string]int64{}
	for _, b := range buckets {
		byStatus[b.Status] = b.Count
	}
	if byStatus[model.StatusPresent] != 2 || byStatus[model.StatusLeave] != 1 {
		t.Errorf("unexpected buckets: %v", byStatus)
	}

	// Employees only ever see their own rows
	resp = doJSON(t, app, http.MethodGet, "/api/attendance/summary", tokenFor(t, emp2), nil)
	var own []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	decodeBody(t, resp, &own)
	var total int64
	for _, b := range own {
		total += b.Count
	}
	if total != 1 {
		t.Errorf("employee summary should cover one record, got %d", total)
	}
}

// seedAttendance inserts a present record for the given day with a check-in
// at the given local hour.
func seedAttendance(t *testing.T, db *gorm.DB, userID uint, day time.Time, hour int) *model.Attendance {
	t.Helper()
	checkIn := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.Local)
	att := &model.Attendance{
		UserID:      userID,
		Date:        day,
		CheckInTime: &checkIn,
		Status:      model.StatusPresent,
		Shift:       model.ShiftMorning,
	}
	if err := db.Create(att).Error; err != nil {
		t.Fatalf("seed attendance: %v", err)
	}
	return att
}
