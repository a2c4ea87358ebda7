package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/teacher-directory/internal/api/dto"
	"github.com/spec-kit/teacher-directory/internal/auth"
	"github.com/spec-kit/teacher-directory/internal/domain"
	"github.com/spec-kit/teacher-directory/internal/service"
	apperrors "github.com/spec-kit/teacher-directory/pkg/util"
)

// TeachersHandler exposes the teacher directory.
type TeachersHandler struct {
	teachers *service.TeacherService
}

// NewTeachersHandler constructs handler.
func NewTeachersHandler(teacherService *service.TeacherService) *TeachersHandler {
	return &TeachersHandler{teachers: teacherService}
}

// List handles GET /teachers.
func (h *TeachersHandler) List(c *fiber.Ctx) error {
	teachers, err := h.teachers.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TeacherListResponse{Status: http.StatusOK, Data: dto.FromTeachers(teachers)})
}

// Get handles GET /teachers/:id where id is the teacher's user id.
func (h *TeachersHandler) Get(c *fiber.Ctx) error {
	teacher, err := h.teachers.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TeacherResponse{Status: http.StatusOK, Data: dto.FromTeacher(*teacher)})
}

// Me handles GET /me.
func (h *TeachersHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Token required")
	}
	teacher, err := h.teachers.Get(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.TeacherResponse{Status: http.StatusOK, Data: dto.FromTeacher(*teacher)})
}

// UpdateMe handles PUT /me.
func (h *TeachersHandler) UpdateMe(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Token required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	upd := service.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		UniversityName: req.UniversityName,
		Department:     req.Department,
		YearJoined:     req.YearJoined,
		Password:       req.Password,
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		upd.Gender = &g
	}

	teacher, err := h.teachers.UpdateProfile(c.UserContext(), claims.UserID, upd)
	if err != nil {
		return err
	}
	return c.JSON(dto.TeacherResponse{Status: http.StatusOK, Data: dto.FromTeacher(*teacher)})
}
