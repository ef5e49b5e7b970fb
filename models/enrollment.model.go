package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressEntry records that a user completed a section. Entries are
// appended as-is: duplicates and ids of since-removed sections are kept.
type ProgressEntry struct {
	SectionID uint `json:"sectionId"`
}

// Enrollment records that a user joined a course. CourseLength is the
// section count snapshotted at enrollment time; together with UserID
// and CourseID it forms the de-duplication key, so at most one row
// exists per (user, course, course_length).
type Enrollment struct {
	gorm.Model
	UserID       uint           `json:"userId" gorm:"index;not null"`
	CourseID     uint           `json:"courseId" gorm:"index;not null"`
	CourseLength int            `json:"course_Length" gorm:"not null"`
	Progress     datatypes.JSON `json:"progress"` // list of ProgressEntry
}

// CoursePayment is the append-only payment record created alongside
// each first enrollment. Details keeps whatever the client submitted.
type CoursePayment struct {
	gorm.Model
	UserID   uint           `json:"userId" gorm:"index;not null"`
	CourseID uint           `json:"courseId" gorm:"index;not null"`
	Details  datatypes.JSON `json:"details"`
}
