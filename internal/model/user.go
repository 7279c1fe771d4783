package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the fixed five-level hierarchy. Privilege comparisons go through
// the rank table below instead of string checks scattered across handlers.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleHRManager  Role = "hr_manager"
	RoleSupervisor Role = "supervisor"
	RoleEmployee   Role = "employee"
)

var roleRank = map[Role]int{
	RoleSuperAdmin: 5,
	RoleAdmin:      4,
	RoleHRManager:  3,
	RoleSupervisor: 2,
	RoleEmployee:   1,
}

// Rank returns the privilege level of the role, 0 for unknown roles.
func (r Role) Rank() int {
	return roleRank[r]
}

// Valid reports whether r is one of the five known roles.
func (r Role) Valid() bool {
	return roleRank[r] != 0
}

// AtLeast reports whether r is at least as privileged as other.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// IsAdmin reports whether r is admin or super_admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// HROrHigher is the allow-list for attendance edits and summaries.
var HROrHigher = []Role{RoleSuperAdmin, RoleAdmin, RoleHRManager, RoleSupervisor}

type User struct {
	gorm.Model
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	Password        string    `json:"-"` // bcrypt hash, never serialized
	Role            Role      `json:"role" gorm:"type:varchar(20);default:'employee'"`
	Department      string    `json:"department"`
	EmployeeID      string    `json:"employeeId" gorm:"uniqueIndex;not null"`
	AssignedAdminID *uint     `json:"assignedAdmin"` // set only when Role == employee
	JoinDate        time.Time `json:"joinDate"`
	IsActive        bool      `json:"isActive" gorm:"default:true"`
}
