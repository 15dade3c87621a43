package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/models"
)

type StudentHandler struct {
	db *gorm.DB
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{db: db}
}

type studentPayload struct {
	StudentID string `json:"student_id" validate:"required,max=20"`
	Name      string `json:"name" validate:"required,max=100"`
	Class     string `json:"class" validate:"omitempty,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (p *studentPayload) normalize() {
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Class = strings.TrimSpace(p.Class)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
}

// GET /api/students
func (h *StudentHandler) List(c echo.Context) error {
	var items []models.Student
	if err := h.db.WithContext(c.Request().Context()).
		Order("name ASC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// POST /api/students
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return err
	}

	ctx := c.Request().Context()

	var dup models.Student
	err := h.db.WithContext(ctx).Where("student_id = ?", p.StudentID).First(&dup).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "STUDENT_EXISTS"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	s := models.Student{
		StudentID: p.StudentID,
		Name:      p.Name,
		Class:     p.Class,
		Email:     p.Email,
	}
	if err := h.db.WithContext(ctx).Create(&s).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_INSERT_FAILED"})
	}
	return c.JSON(http.StatusCreated, s)
}
