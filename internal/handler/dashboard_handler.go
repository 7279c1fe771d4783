package handler

import (
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"attendfy-backend/internal/model"
	"attendfy-backend/internal/repository"
)

type DashboardHandler struct {
	users      repository.UserRepository
	attendance repository.AttendanceRepository
}

func NewDashboardHandler(users repository.UserRepository, attendance repository.AttendanceRepository) *DashboardHandler {
	return &DashboardHandler{users: users, attendance: attendance}
}

// Stats returns today's headline numbers and their percentages.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	today := model.DayOf(time.Now())

	totalEmployees, err := h.users.CountByRole(model.RoleEmployee)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	todayAttendance, err := h.attendance.ListByDate(today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	var presentToday, lateToday int64
	for _, a := range todayAttendance {
		if a.Status == model.StatusPresent {
			presentToday++
		}
		if a.IsLate() {
			lateToday++
		}
	}
	absentToday := totalEmployees - presentToday

	return c.JSON(fiber.Map{
		"totalEmployees":    totalEmployees,
		"presentToday":      presentToday,
		"lateToday":         lateToday,
		"absentToday":       absentToday,
		"presentPercentage": percent(presentToday, totalEmployees),
		"latePercentage":    percent(lateToday, totalEmployees),
		"absentPercentage":  percent(absentToday, totalEmployees),
	})
}

// WeeklyAttendance returns the trailing 7-day present/late series.
func (h *DashboardHandler) WeeklyAttendance(c *fiber.Ctx) error {
	today := model.DayOf(time.Now())
	lastWeek := today.AddDate(0, 0, -6)

	records, err := h.attendance.ListBetween(lastWeek, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	byDay := make(map[string][]model.Attendance)
	for _, a := range records {
		key := model.DayOf(a.Date).Format("2006-01-02")
		byDay[key] = append(byDay[key], a)
	}

	weekly := make([]fiber.Map, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		var present, late int64
		for _, a := range byDay[day.Format("2006-01-02")] {
			if a.Status == model.StatusPresent {
				present++
			}
			if a.IsLate() {
				late++
			}
		}
		weekly = append(weekly, fiber.Map{
			"day":     day.Format("Mon"),
			"present": present,
			"late":    late,
		})
	}

	return c.JSON(weekly)
}

// RecentActivity returns the five most recent check-in/check-out events
// formatted for the dashboard feed. Records without a check-in timestamp
// are silently skipped.
func (h *DashboardHandler) RecentActivity(c *fiber.Ctx) error {
	records, err := h.attendance.RecentWithUsers(5)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	activities := make([]fiber.Map, 0, len(records))
	for _, a := range records {
		if a.CheckInTime == nil || a.User == nil {
			continue
		}

		action := "Checked in"
		eventTime := *a.CheckInTime
		if a.CheckOutTime != nil {
			action = "Checked out"
			eventTime = *a.CheckOutTime
		}

		activities = append(activities, fiber.Map{
			"name":   a.User.FirstName + " " + a.User.LastName,
			"action": action,
			"time":   eventTime.Local().Format("3:04 PM"),
			"avatar": initials(a.User.FirstName, a.User.LastName),
		})
	}

	return c.JSON(activities)
}

// percent formats count/total as a whole-number percentage string. A zero
// total yields "0%", never NaN.
func percent(count, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(count)/float64(total)*100)))
}

func initials(first, last string) string {
	out := ""
	if first != "" {
		out += string([]rune(first)[0])
	}
	if last != "" {
		out += string([]rune(last)[0])
	}
	return out
}
