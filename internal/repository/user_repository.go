package repository

import (
	"strings"

	"gorm.io/gorm"

	"attendfy-backend/internal/model"
)

// UserFilter narrows the admin listing. Zero values mean "no filter".
type UserFilter struct {
	Department      string
	Role            string
	IsActive        *bool
	AssignedAdminID *uint
}

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByEmailOrEmployeeID(email, employeeID string) (*model.User, error)
	List(filter UserFilter) ([]model.User, error)
	Update(user *model.User) error
	Delete(id uint) error
	CountByRole(role model.Role) (int64, error)
	StatsOverview() (map[string]interface{}, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrEmployeeID is the duplicate check used at registration.
func (r *userRepository) FindByEmailOrEmployeeID(email, employeeID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ? OR employee_id = ?", strings.ToLower(strings.TrimSpace(email)), employeeID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(filter UserFilter) ([]model.User, error) {
	q := r.db.Model(&model.User{})
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.AssignedAdminID != nil {
		q = q.Where("assigned_admin_id = ?", *filter.AssignedAdminID)
	}

	var users []model.User
	err := q.Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&model.User{}, id).Error
}

func (r *userRepository) CountByRole(role model.Role) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// StatsOverview aggregates totals plus a per-department breakdown.
func (r *userRepository) StatsOverview() (map[string]interface{}, error) {
	var totalUsers, activeUsers int64
	if err := r.db.Model(&model.User{}).Count(&totalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.User{}).Where("is_active = ?", true).Count(&activeUsers).Error; err != nil {
		return nil, err
	}

	var departments []string
	if err := r.db.Model(&model.User{}).Distinct("department").Pluck("department", &departments).Error; err != nil {
		return nil, err
	}
	var roles []string
	if err := r.db.Model(&model.User{}).Distinct("role").Pluck("role", &roles).Error; err != nil {
		return nil, err
	}

	var perDept []struct {
		Department  string
		Count       int64
		ActiveCount int64
	}
	err := r.db.Model(&model.User{}).
		Select("department, count(*) as count, sum(case when is_active then 1 else 0 end) as active_count").
		Group("department").
		Scan(&perDept).Error
	if err != nil {
		return nil, err
	}

	breakdown := make([]map[string]interface{}, 0, len(perDept))
	for _, d := range perDept {
		breakdown = append(breakdown, map[string]interface{}{
			"department":  d.Department,
			"count":       d.Count,
			"activeCount": d.ActiveCount,
		})
	}

	return map[string]interface{}{
		"overview": map[string]interface{}{
			"totalUsers":  totalUsers,
			"activeUsers": activeUsers,
			"departments": departments,
			"roles":       roles,
		},
		"departmentBreakdown": breakdown,
	}, nil
}
