package courseValidator

import (
	"coursehub/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CourseForm carries the validated multipart fields of an addcourse request.
type CourseForm struct {
	Educator            string
	Title               string
	Categories          string
	Price               string
	Description         string
	SectionTitles       []string
	SectionDescriptions []string
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// AddCourse validates the multipart course-creation form
func AddCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
		}

		reqData := &CourseForm{
			Educator:            formValue(form.Value, "C_educator"),
			Title:               formValue(form.Value, "C_title"),
			Categories:          formValue(form.Value, "C_categories"),
			Price:               formValue(form.Value, "C_price"),
			Description:         formValue(form.Value, "C_description"),
			SectionTitles:       form.Value["S_title"],
			SectionDescriptions: form.Value["S_description"],
		}

		errors := make(map[string]string)

		if reqData.Educator == "" {
			errors["C_educator"] = "Educator name is required!"
		}
		if reqData.Title == "" {
			errors["C_title"] = "Title is required!"
		}
		if reqData.Categories == "" {
			errors["C_categories"] = "Categories are required!"
		}
		if reqData.Description == "" {
			errors["C_description"] = "Description is required!"
		}

		// Section titles and descriptions must pair up one to one
		if len(reqData.SectionTitles) == 0 {
			errors["S_title"] = "At least one section is required!"
		} else if len(reqData.SectionTitles) != len(reqData.SectionDescriptions) {
			errors["sections"] = "Invalid sections data!"
		} else {
			for i := range reqData.SectionTitles {
				if strings.TrimSpace(reqData.SectionTitles[i]) == "" || strings.TrimSpace(reqData.SectionDescriptions[i]) == "" {
					errors["sections"] = "Section title and description are required!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseID validates the :courseid route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("courseid"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

// CompleteModule validates the section-completion request body
func CompleteModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID  uint `json:"courseId"`
			SectionID uint `json:"sectionId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}
		if reqData.SectionID == 0 {
			errors["sectionId"] = "Section ID is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
