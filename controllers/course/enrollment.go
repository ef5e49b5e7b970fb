package courseController

import (
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/utils"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnrollCourse enrolls the authenticated user in a course. The
// de-duplication key is (user, course, current section count): when a
// matching enrollment exists the call reports already-enrolled and has
// no side effects. A first enrollment creates the payment record and
// bumps the course counter atomically in one transaction.
func EnrollCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course Not Found!", nil)
	}

	var sectionCount int64
	if err := database.Database.Db.Model(&models.Section{}).Where("course_id = ?", courseID).Count(&sectionCount).Error; err != nil {
		log.Printf("Error counting course sections: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in the course", nil)
	}

	var existing models.Enrollment
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND course_length = ?", userID, courseID, sectionCount).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "You are already enrolled in this Course!",
			"course":  fiber.Map{"id": course.ID, "Title": course.Title},
		})
	}

	// Whatever the client submitted rides along on the payment record
	details := c.Body()
	if len(details) == 0 || !json.Valid(details) {
		details = []byte("{}")
	}

	enrollment := models.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		CourseLength: int(sectionCount),
		Progress:     datatypes.JSON("[]"),
	}
	payment := models.CoursePayment{
		UserID:   userID,
		CourseID: courseID,
		Details:  datatypes.JSON(details),
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		log.Printf("Error saving course payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in the course", nil)
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		log.Printf("Error saving enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in the course", nil)
	}
	// Atomic counter update, no read-modify-write
	if err := tx.Model(&models.Course{}).Where("id = ?", courseID).
		UpdateColumn("enrolled", gorm.Expr("enrolled + ?", 1)).Error; err != nil {
		tx.Rollback()
		log.Printf("Error updating enrolled count: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in the course", nil)
	}
	tx.Commit()

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err == nil {
		utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Enroll Successfully",
		"course":  fiber.Map{"id": course.ID, "Title": course.Title},
	})
}

// GetCourseContent returns the section list, the user's progress
// entries and the enrollment record backing the client-side certificate
func GetCourseContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No such course found", nil)
	}

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User is not enrolled in this course", nil)
	}

	sections := []models.Section{}
	if err := database.Database.Db.Where("course_id = ?", courseID).Order("position asc").Find(&sections).Error; err != nil {
		log.Printf("Error fetching course sections: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":         true,
		"courseContent":   sections,
		"completeModule":  enrollment.Progress,
		"certificateData": enrollment,
	})
}

// CompleteModule appends a progress entry for the given section.
// Entries are appended as submitted: duplicates are kept and the
// section id is not checked against the course's current sections.
func CompleteModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCompletion").(*struct {
		CourseID  uint `json:"courseId"`
		SectionID uint `json:"sectionId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, reqData.CourseID).First(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User is not enrolled in the course",
		})
	}

	var progress []models.ProgressEntry
	if len(enrollment.Progress) > 0 {
		if err := json.Unmarshal(enrollment.Progress, &progress); err != nil {
			log.Printf("Error decoding progress for enrollment %d: %v", enrollment.ID, err)
		}
	}
	progress = append(progress, models.ProgressEntry{SectionID: reqData.SectionID})

	updated, err := json.Marshal(progress)
	if err != nil {
		log.Printf("Error encoding progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error", nil)
	}

	if err := database.Database.Db.Model(&enrollment).Update("progress", datatypes.JSON(updated)).Error; err != nil {
		log.Printf("Error saving progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Section completed successfully",
	})
}

// GetEnrolledCourses resolves the user's enrollments to their courses,
// dropping enrollments whose course has since been deleted
func GetEnrolledCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error", nil)
	}

	courses := []models.Course{}
	for _, enrollment := range enrollments {
		var course models.Course
		if err := database.Database.Db.Where("id = ?", enrollment.CourseID).Preload("Sections", sectionsPreload).First(&course).Error; err != nil {
			continue // course deleted after enrollment
		}
		courses = append(courses, course)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    courses,
	})
}
