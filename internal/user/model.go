// File: internal/user/model.go
package user

import (
	"time"

	"kudos_web/internal/common"

	"github.com/google/uuid"
)

// Department is the team a user belongs to.
type Department string

const (
	DepartmentMarketing   Department = "MARKETING"
	DepartmentSales       Department = "SALES"
	DepartmentEngineering Department = "ENGINEERING"
	DepartmentHR          Department = "HR"
)

// Departments lists every department in display order.
var Departments = []Department{DepartmentMarketing, DepartmentSales, DepartmentEngineering, DepartmentHR}

// DepartmentValues returns the departments as plain strings, for enum validation.
func DepartmentValues() []string {
	out := make([]string, len(Departments))
	for i, d := range Departments {
		out[i] = string(d)
	}
	return out
}

// Label is the human readable department name.
func (d Department) Label() string {
	switch d {
	case DepartmentMarketing:
		return "Marketing"
	case DepartmentSales:
		return "Sales"
	case DepartmentEngineering:
		return "Engineering"
	case DepartmentHR:
		return "HR"
	}
	return string(d)
}

// User represents the user model in the database.
type User struct {
	common.BaseModel
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Profile      Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Profile holds the display data of a user. One row per user.
type Profile struct {
	UserID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	FirstName      string      `gorm:"type:varchar(100);not null"`
	LastName       string      `gorm:"type:varchar(100);not null"`
	Department     *Department `gorm:"type:varchar(32)"`
	ProfilePicture *string     `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Profile) TableName() string {
	return "profiles"
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Initials is shown in place of a missing avatar.
func (p Profile) Initials() string {
	var out []rune
	for _, s := range []string{p.FirstName, p.LastName} {
		for _, r := range s {
			out = append(out, r)
			break
		}
	}
	return string(out)
}

// DepartmentValue returns the department or "" when unset.
func (p Profile) DepartmentValue() string {
	if p.Department == nil {
		return ""
	}
	return string(*p.Department)
}

// PictureURL returns the avatar URL or "" when unset.
func (p Profile) PictureURL() string {
	if p.ProfilePicture == nil {
		return ""
	}
	return *p.ProfilePicture
}

// RegisterInput carries an already validated registration form.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// ProfileInput carries an already validated profile form.
type ProfileInput struct {
	FirstName  string
	LastName   string
	Department Department
}
