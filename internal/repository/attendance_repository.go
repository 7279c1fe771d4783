package repository

import (
	"time"

	"gorm.io/gorm"

	"attendfy-backend/internal/model"
)

// AttendanceFilter narrows the ledger listing. Zero values mean "no filter".
type AttendanceFilter struct {
	UserID    *uint
	StartDate *time.Time
	EndDate   *time.Time
}

// StatusBucket is one row of the status-grouped summary.
type StatusBucket struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Users  []uint `json:"users"` // distinct contributing user ids
}

type AttendanceRepository interface {
	Create(att *model.Attendance) error
	Update(att *model.Attendance) error
	FindByID(id uint) (*model.Attendance, error)
	FindByUserAndDate(userID uint, date time.Time) (*model.Attendance, error)
	List(filter AttendanceFilter) ([]model.Attendance, error)
	ListByDate(date time.Time) ([]model.Attendance, error)
	ListBetween(start, end time.Time) ([]model.Attendance, error)
	Summary(filter AttendanceFilter, department string) ([]StatusBucket, error)
	RecentWithUsers(limit int) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(att *model.Attendance) error {
	return r.db.Create(att).Error
}

func (r *attendanceRepository) Update(att *model.Attendance) error {
	return r.db.Save(att).Error
}

func (r *attendanceRepository) FindByID(id uint) (*model.Attendance, error) {
	var att model.Attendance
	if err := r.db.First(&att, id).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) FindByUserAndDate(userID uint, date time.Time) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) List(filter AttendanceFilter) ([]model.Attendance, error) {
	q := r.db.Preload("User")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.StartDate != nil {
		q = q.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("date <= ?", *filter.EndDate)
	}

	var list []model.Attendance
	err := q.Order("date desc").Find(&list).Error
	return list, err
}

func (r *attendanceRepository) ListByDate(date time.Time) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.Where("date = ?", date).Find(&list).Error
	return list, err
}

func (r *attendanceRepository) ListBetween(start, end time.Time) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.Where("date >= ? AND date <= ?", start, end).Find(&list).Error
	return list, err
}

// Summary groups the filtered ledger by status, collecting the distinct
// contributing users per bucket. An optional department filter joins the
// directory.
func (r *attendanceRepository) Summary(filter AttendanceFilter, department string) ([]StatusBucket, error) {
	q := r.db.Model(&model.Attendance{})
	if filter.UserID != nil {
		q = q.Where("attendances.user_id = ?", *filter.UserID)
	}
	if filter.StartDate != nil {
		q = q.Where("attendances.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("attendances.date <= ?", *filter.EndDate)
	}
	if department != "" {
		q = q.Joins("JOIN users ON users.id = attendances.user_id").
			Where("users.department = ?", department)
	}

	var rows []struct {
		Status string
		UserID uint
	}
	if err := q.Select("attendances.status as status, attendances.user_id as user_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		count int64
		users map[uint]struct{}
	}
	buckets := make(map[string]*bucket)
	order := []string{}
	for _, row := range rows {
		b, ok := buckets[row.Status]
		if !ok {
			b = &bucket{users: make(map[uint]struct{})}
			buckets[row.Status] = b
			order = append(order, row.Status)
		}
		b.count++
		b.users[row.UserID] = struct{}{}
	}

	result := make([]StatusBucket, 0, len(order))
	for _, status := range order {
		b := buckets[status]
		users := make([]uint, 0, len(b.users))
		for id := range b.users {
			users = append(users, id)
		}
		result = append(result, StatusBucket{Status: status, Count: b.count, Users: users})
	}
	return result, nil
}

func (r *attendanceRepository) RecentWithUsers(limit int) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.Preload("User").
		Where("check_in_time IS NOT NULL").
		Order("check_in_time desc").
		Limit(limit).
		Find(&list).Error
	return list, err
}
