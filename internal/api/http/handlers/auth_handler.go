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

// AuthHandler exposes register, login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	res, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		UniversityName: req.UniversityName,
		Department:     req.Department,
		Gender:         domain.Gender(req.Gender),
		YearJoined:     req.YearJoined,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Status:    http.StatusCreated,
		Message:   "User registered successfully",
		Token:     res.Token.Value,
		ExpiresAt: res.Token.ExpiresAt,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	_, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Status:    http.StatusOK,
		Message:   "Login successful",
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Token required")
	}
	if err := h.auth.Logout(c.UserContext(), claims); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Status: http.StatusOK, Message: "Logged out"})
}
