package courseController

import (
	"coursehub/config"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	"coursehub/utils"
	courseValidator "coursehub/validators/course"
	"encoding/json"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// sectionsPreload orders preloaded sections by creation order
func sectionsPreload(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// AddCourse creates a course with its sections from a multipart form.
// The i-th uploaded S_content file is attached to the i-th section.
func AddCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseForm)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["S_content"]
	}

	sections := make([]models.Section, len(reqData.SectionTitles))
	for i, title := range reqData.SectionTitles {
		sections[i] = models.Section{
			Position:    i,
			Title:       title,
			Description: reqData.SectionDescriptions[i],
		}

		if i < len(files) {
			fileRef, err := utils.SaveUploadedFile(files[i], config.AppConfig.UploadDir)
			if err != nil {
				log.Printf("Error saving uploaded file: %v", err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
			}
			content, _ := json.Marshal([]models.SectionFile{fileRef})
			sections[i].Content = content
		}
	}

	price := reqData.Price
	if price == "0" {
		price = models.Free
	}

	course := models.Course{
		UserID:      userID,
		Educator:    reqData.Educator,
		Title:       reqData.Title,
		Categories:  reqData.Categories,
		Price:       price,
		Description: reqData.Description,
		Sections:    sections,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully", nil)
}

// GetAllCourses lists every course. An empty catalogue is a successful
// empty list, not an error.
func GetAllCourses(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := database.Database.Db.Preload("Sections", sectionsPreload).Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    courses,
	})
}

// GetEducatorCourses lists the courses owned by the authenticated user
func GetEducatorCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courses := []models.Course{}
	if err := database.Database.Db.Where("user_id = ?", userID).Preload("Sections", sectionsPreload).Find(&courses).Error; err != nil {
		log.Printf("Error fetching educator courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses", nil)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "All Courses Fetched Successfully",
		"data":    courses,
	})
}

// DeleteCourse removes a course and its sections. Enrollment and
// payment rows are left in place; readers drop the dangling references.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Where("course_id = ?", courseID).Delete(&models.Section{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting course sections: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course", nil)
	}
	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully", nil)
}
