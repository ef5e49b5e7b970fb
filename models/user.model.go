package models

import "gorm.io/gorm"

// User roles
const (
	RoleStudent  = "Student"
	RoleEducator = "Teacher"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"type" gorm:"default:'Student'"` // Student or Teacher
}
