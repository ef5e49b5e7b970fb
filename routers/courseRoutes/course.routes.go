package courseRoutes

import (
	courseController "coursehub/controllers/course"
	"coursehub/middleware"
	courseValidator "coursehub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course, enrollment and progress routes
func SetupCourseRoutes(app *fiber.App) {
	// Course authoring and catalogue
	app.Post("/addcourse", middleware.JWTMiddleware, courseValidator.AddCourse(), courseController.AddCourse)
	app.Get("/getallcourses", courseController.GetAllCourses)
	app.Get("/getallcoursesteacher", middleware.JWTMiddleware, courseController.GetEducatorCourses)
	app.Delete("/deletecourse/:courseid", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.DeleteCourse)

	// Enrollment and progress
	app.Post("/enrolledcourse/:courseid", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.EnrollCourse)
	app.Get("/coursecontent/:courseid", middleware.JWTMiddleware, courseValidator.CourseID(), courseController.GetCourseContent)
	app.Post("/completemodule", middleware.JWTMiddleware, courseValidator.CompleteModule(), courseController.CompleteModule)
	app.Get("/getallcoursesuser", middleware.JWTMiddleware, courseController.GetEnrolledCourses)
}
