package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Free is the sentinel stored when a course is created with price "0".
const Free = "free"

// Course represents a marketplace course. JSON field names follow the
// wire contract consumed by the SPA (C_-prefixed course fields).
type Course struct {
	gorm.Model
	UserID      uint      `json:"userId" gorm:"index;not null"` // owning educator
	Educator    string    `json:"C_educator"`
	Title       string    `json:"C_title"`
	Categories  string    `json:"C_categories"`
	Price       string    `json:"C_price"` // numeric string or "free"
	Description string    `json:"C_description"`
	Enrolled    uint      `json:"enrolled" gorm:"default:0"`
	Sections    []Section `json:"sections"`
}

// SectionFile is one uploaded file reference attached to a section.
type SectionFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// Section is one unit of course content. Sections get stable database
// ids at creation; progress records reference Section.ID rather than
// the section's position in the course.
type Section struct {
	gorm.Model
	CourseID    uint           `json:"course_id" gorm:"index;not null"`
	Position    int            `json:"position" gorm:"default:0"` // creation order within the course
	Title       string         `json:"S_title"`
	Description string         `json:"S_description"`
	Content     datatypes.JSON `json:"S_content"` // list of SectionFile
}
