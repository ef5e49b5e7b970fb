package utils

import (
	"coursehub/database"
	"coursehub/models"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeEnrollmentReconciler schedules the nightly repair of course
// enrolled counters from the enrollment rows
func InitializeEnrollmentReconciler() {
	log.Println("[ENROLLMENT-RECONCILER] Initializing enrollment reconciler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[ENROLLMENT-RECONCILER] Running nightly enrolled-count reconciliation...")
		ReconcileEnrolledCounts()
	})

	c.Start()
	log.Println("[ENROLLMENT-RECONCILER] Enrollment reconciler started - runs daily at 3 AM")
}

// ReconcileEnrolledCounts rewrites each course's enrolled counter as
// the count of its enrollment rows. The counter is maintained with an
// atomic in-transaction update on enroll, so this only repairs drift
// left by manual data edits or crashed transactions.
func ReconcileEnrolledCounts() {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Find(&courses).Error; err != nil {
		log.Printf("[ENROLLMENT-RECONCILER] Error fetching courses: %v", err)
		return
	}

	for _, course := range courses {
		var count int64
		if err := db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&count).Error; err != nil {
			log.Printf("[ENROLLMENT-RECONCILER] Error counting enrollments for course %d: %v", course.ID, err)
			continue
		}

		if uint(count) == course.Enrolled {
			continue
		}

		if err := db.Model(&models.Course{}).Where("id = ?", course.ID).
			UpdateColumn("enrolled", count).Error; err != nil {
			log.Printf("[ENROLLMENT-RECONCILER] Error updating course %d: %v", course.ID, err)
			continue
		}
		log.Printf("[ENROLLMENT-RECONCILER] Repaired course %d enrolled count: %d -> %d", course.ID, course.Enrolled, count)
	}
}
