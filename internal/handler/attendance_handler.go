package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"attendfy-backend/internal/middleware"
	"attendfy-backend/internal/model"
	"attendfy-backend/internal/repository"
	"attendfy-backend/internal/validation"
)

type AttendanceHandler struct {
	attendance repository.AttendanceRepository
}

func NewAttendanceHandler(attendance repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type CheckRequest struct {
	Coordinates []float64 `json:"coordinates"` // [lng, lat], defaults to 0,0
	Shift       string    `json:"shift"`
}

func (req *CheckRequest) latLng() (float64, float64) {
	if len(req.Coordinates) >= 2 {
		return req.Coordinates[1], req.Coordinates[0]
	}
	return 0, 0
}

// CheckIn opens today's attendance record for the caller.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	// Coordinates and shift are optional, so an empty body is fine
	var req CheckRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
		}
	}
	if req.Shift != "" && !model.ValidShift(req.Shift) {
		return validation.Respond(c, []validation.FieldError{{Field: "Shift", Message: "must be one of: morning evening night"}})
	}

	now := time.Now()
	today := model.DayOf(now)

	// 1. A day with a check-in already on record cannot be opened twice
	att, findErr := h.attendance.FindByUserAndDate(caller.ID, today)
	if findErr == nil && att.CheckInTime != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Already checked in today"})
	}

	// 2. Create or reuse the day's record
	isNew := findErr != nil
	if isNew {
		shift := req.Shift
		if shift == "" {
			shift = model.ShiftMorning
		}
		att = &model.Attendance{
			UserID: caller.ID,
			Date:   today,
			Shift:  shift,
		}
	}

	lat, lng := req.latLng()
	att.CheckInTime = &now
	att.CheckInLat = lat
	att.CheckInLng = lng
	att.Status = model.StatusPresent

	// 3. Persist. Two concurrent first check-ins race on the (user, date)
	// unique key; the loser gets the same conflict answer.
	var err error
	if isNew {
		err = h.attendance.Create(att)
	} else {
		err = h.attendance.Update(att)
	}
	if err != nil {
		if isNew {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Already checked in today"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(att)
}

// CheckOut closes today's attendance record for the caller.
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	var req CheckRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
		}
	}

	now := time.Now()
	today := model.DayOf(now)

	att, err := h.attendance.FindByUserAndDate(caller.ID, today)
	if err != nil || att.CheckInTime == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No check-in found for today"})
	}
	if att.CheckOutTime != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Already checked out today"})
	}

	lat, lng := req.latLng()
	att.CheckOutTime = &now
	att.CheckOutLat = lat
	att.CheckOutLng = lng

	// Save recomputes work hours now that both timestamps are set
	if err := h.attendance.Update(att); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(att)
}

// List returns ledger records for a date range. Employees and supervisors
// only ever see their own; privileged roles may filter by user.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	filter := repository.AttendanceFilter{}
	if start, err := parseDate(c.Query("startDate")); err == nil {
		filter.StartDate = &start
	}
	if end, err := parseDate(c.Query("endDate")); err == nil {
		filter.EndDate = &end
	}

	if caller.Role == model.RoleEmployee || caller.Role == model.RoleSupervisor {
		filter.UserID = &caller.ID
	} else if v := c.Query("userId"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			userID := uint(id)
			filter.UserID = &userID
		}
	}

	records, err := h.attendance.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(records)
}

type UpdateAttendanceRequest struct {
	Date   string `json:"date" validate:"required"`
	Shift  string `json:"shift" validate:"required,oneof=morning evening night"`
	Status string `json:"status" validate:"required,oneof=present absent half-day leave holiday"`
	Notes  string `json:"notes"`
}

// Update is the HR-or-higher direct edit. The editor is stamped as approver.
func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid attendance id"})
	}

	var req UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validation.Check(req); errs != nil {
		return validation.Respond(c, errs)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return validation.Respond(c, []validation.FieldError{{Field: "Date", Message: "must be an ISO 8601 date"}})
	}

	att, err := h.attendance.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Attendance record not found"})
	}

	att.Date = date
	att.Shift = req.Shift
	att.Status = req.Status
	if req.Notes != "" {
		att.Notes = req.Notes
	}
	att.ApprovedByID = &caller.ID

	if err := h.attendance.Update(att); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(att)
}

// Summary buckets the ledger by status over a date range. Employees are
// pinned to their own records; everyone else may filter by department.
func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)

	filter := repository.AttendanceFilter{}
	if start, err := parseDate(c.Query("startDate")); err == nil {
		filter.StartDate = &start
	}
	if end, err := parseDate(c.Query("endDate")); err == nil {
		filter.EndDate = &end
	}

	department := ""
	if caller.Role == model.RoleEmployee {
		filter.UserID = &caller.ID
	} else {
		department = c.Query("department")
	}

	summary, err := h.attendance.Summary(filter, department)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(summary)
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp and
// normalizes to the ledger's local-midnight day key.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return model.DayOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return model.DayOf(t), nil
}
