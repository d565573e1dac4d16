package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
)

type AuthHandler struct {
	userRepo    repositories.UserRepository
	studentRepo repositories.StudentRepository
	companyRepo repositories.CompanyRepository
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthHandler(
	userRepo repositories.UserRepository,
	studentRepo repositories.StudentRepository,
	companyRepo repositories.CompanyRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		companyRepo: companyRepo,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// HandleRegister handles POST /auth/register. Creates the user plus the
// empty student or company profile matching the requested role.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email, password and name are required",
		})
	}

	role := models.Role(req.Role)
	if role != models.RoleStudent && role != models.RoleCompany && role != models.RoleAdmin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role must be one of student, company, admin",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := h.userRepo.Create(user); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	switch role {
	case models.RoleStudent:
		student := &models.Student{
			ID:     uuid.New(),
			UserID: user.ID,
			Name:   req.Name,
			Skills: []string{},
		}
		if err := h.studentRepo.Create(student); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create student profile",
			})
		}
	case models.RoleCompany:
		company := &models.Company{
			ID:     uuid.New(),
			UserID: user.ID,
			Name:   req.Name,
		}
		if err := h.companyRepo.Create(company); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create company profile",
			})
		}
	}

	token, err := IssueToken(user, h.jwtSecret, h.tokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.AuthResponse{
		Token: token,
		Role:  string(user.Role),
	})
}

// HandleLogin handles POST /auth/login.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	user, err := h.userRepo.FindByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := IssueToken(user, h.jwtSecret, h.tokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(models.AuthResponse{
		Token: token,
		Role:  string(user.Role),
	})
}
