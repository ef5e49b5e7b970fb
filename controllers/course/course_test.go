package courseController

import (
	"bytes"
	"coursehub/config"
	"coursehub/database"
	"coursehub/middleware"
	"coursehub/models"
	courseValidator "coursehub/validators/course"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCourseTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
		UploadDir: t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Section{},
		&models.Enrollment{},
		&models.CoursePayment{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/addcourse", middleware.JWTMiddleware, courseValidator.AddCourse(), AddCourse)
	app.Get("/getallcourses", GetAllCourses)
	app.Get("/getallcoursesteacher", middleware.JWTMiddleware, GetEducatorCourses)
	app.Delete("/deletecourse/:courseid", middleware.JWTMiddleware, courseValidator.CourseID(), DeleteCourse)
	app.Post("/enrolledcourse/:courseid", middleware.JWTMiddleware, courseValidator.CourseID(), EnrollCourse)
	app.Get("/coursecontent/:courseid", middleware.JWTMiddleware, courseValidator.CourseID(), GetCourseContent)
	app.Post("/completemodule", middleware.JWTMiddleware, courseValidator.CompleteModule(), CompleteModule)
	app.Get("/getallcoursesuser", middleware.JWTMiddleware, GetEnrolledCourses)
	return app
}

func createTestUser(t *testing.T, name, email, role string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x", Role: role}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func bearerToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

type courseForm struct {
	fields       map[string]string
	sectionTitle []string
	sectionDesc  []string
	fileContents []string
}

func defaultCourseForm() courseForm {
	return courseForm{
		fields: map[string]string{
			"C_educator":    "Jane Doe",
			"C_title":       "Intro to Go",
			"C_categories":  "Programming",
			"C_price":       "49",
			"C_description": "A gentle introduction",
		},
		sectionTitle: []string{"Basics", "Structs"},
		sectionDesc:  []string{"Syntax and tooling", "Data modelling"},
	}
}

func postCourse(t *testing.T, app *fiber.App, auth string, form courseForm) *http.Response {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for key, value := range form.fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, title := range form.sectionTitle {
		require.NoError(t, w.WriteField("S_title", title))
	}
	for _, desc := range form.sectionDesc {
		require.NoError(t, w.WriteField("S_description", desc))
	}
	for i, content := range form.fileContents {
		fw, err := w.CreateFormFile("S_content", "lecture"+string(rune('a'+i))+".mp4")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/addcourse", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", auth)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAddCourse_RequiresAuth(t *testing.T) {
	app := setupCourseTest(t)

	resp := postCourse(t, app, "", defaultCourseForm())
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAddCourse_SectionLengthMismatchPersistsNothing(t *testing.T) {
	app := setupCourseTest(t)
	educator := createTestUser(t, "Jane", "jane@example.com", models.RoleEducator)

	form := defaultCourseForm()
	form.sectionTitle = []string{"A", "B"}
	form.sectionDesc = []string{"x"}

	resp := postCourse(t, app, bearerToken(t, educator), form)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var courseCount, sectionCount int64
	require.NoError(t, database.Database.Db.Model(&models.Course{}).Count(&courseCount).Error)
	require.NoError(t, database.Database.Db.Model(&models.Section{}).Count(&sectionCount).Error)
	assert.Zero(t, courseCount)
	assert.Zero(t, sectionCount)
}

func TestAddCourse_MissingFields(t *testing.T) {
	app := setupCourseTest(t)
	educator := createTestUser(t, "Jane", "jane@example.com", models.RoleEducator)

	form := defaultCourseForm()
	delete(form.fields, "C_title")

	resp := postCourse(t, app, bearerToken(t, educator), form)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAddCourse_PersistsSectionsAndUploads(t *testing.T) {
	app := setupCourseTest(t)
	educator := createTestUser(t, "Jane", "jane@example.com", models.RoleEducator)

	form := defaultCourseForm()
	form.fileContents = []string{"video-bytes"}

	resp := postCourse(t, app, bearerToken(t, educator), form)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	require.NoError(t, database.Database.Db.Preload("Sections", sectionsPreload).First(&course).Error)
	assert.Equal(t, educator.ID, course.UserID)
	assert.Equal(t, "Intro to Go", course.Title)
	assert.Equal(t, "49", course.Price)
	assert.Equal(t, uint(0), course.Enrolled)
	require.Len(t, course.Sections, 2)
	assert.Equal(t, 0, course.Sections[0].Position)
	assert.Equal(t, "Basics", course.Sections[0].Title)
	assert.Equal(t, 1, course.Sections[1].Position)

	// First section carries the uploaded file reference
	var refs []models.SectionFile
	require.NoError(t, json.Unmarshal(course.Sections[0].Content, &refs))
	require.Len(t, refs, 1)
	assert.Equal(t, "lecturea.mp4", refs[0].Filename)
	assert.True(t, strings.HasPrefix(refs[0].Path, "/uploads/"))

	stored := filepath.Join(config.AppConfig.UploadDir, strings.TrimPrefix(refs[0].Path, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))

	// Second section has no upload
	assert.Empty(t, course.Sections[1].Content)
}

func TestAddCourse_ZeroPriceBecomesFree(t *testing.T) {
	app := setupCourseTest(t)
	educator := createTestUser(t, "Jane", "jane@example.com", models.RoleEducator)

	form := defaultCourseForm()
	form.fields["C_price"] = "0"

	resp := postCourse(t, app, bearerToken(t, educator), form)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var course models.Course
	require.NoError(t, database.Database.Db.First(&course).Error)
	assert.Equal(t, models.Free, course.Price)
}

func TestGetAllCourses_EmptyCatalogueIsSuccess(t *testing.T) {
	app := setupCourseTest(t)

	req := httptest.NewRequest("GET", "/getallcourses", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, data)
}

func TestGetEducatorCourses_FiltersByOwner(t *testing.T) {
	app := setupCourseTest(t)
	jane := createTestUser(t, "Jane", "jane@example.com", models.RoleEducator)
	mark := createTestUser(t, "Mark", "mark@example.com", models.RoleEducator)

	require.Equal(t, fiber.StatusCreated, postCourse(t, app, bearerToken(t, jane), defaultCourseForm()).StatusCode)

	other := defaultCourseForm()
	other.fields["C_title"] = "Advanced Go"
	require.Equal(t, fiber.StatusCreated, postCourse(t, app, bearerToken(t, mark), other).StatusCode)

	req := httptest.NewRequest("GET", "/getallcoursesteacher", nil)
	req.Header.Set("Authorization", bearerToken(t, jane))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	course := data[0].(map[string]interface{})
	assert.Equal(t, "Intro to Go", course["C_title"])
}

func TestDeleteCourse(t *testing.T) {
	app := setupCourseTest(t)
	educator := createTestUser(t, "Jane", "jane@example.com", models.RoleEducator)
	auth := bearerToken(t, educator)

	t.Run("unknown course", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/deletecourse/999", nil)
		req.Header.Set("Authorization", auth)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("removes course and sections", func(t *testing.T) {
		require.Equal(t, fiber.StatusCreated, postCourse(t, app, auth, defaultCourseForm()).StatusCode)

		var course models.Course
		require.NoError(t, database.Database.Db.First(&course).Error)

		req := httptest.NewRequest("DELETE", "/deletecourse/"+itoa(course.ID), nil)
		req.Header.Set("Authorization", auth)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		err = database.Database.Db.First(&models.Course{}, course.ID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		var sectionCount int64
		require.NoError(t, database.Database.Db.Model(&models.Section{}).Where("course_id = ?", course.ID).Count(&sectionCount).Error)
		assert.Zero(t, sectionCount)
	})
}
