package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/middleware"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Expires   int
}

type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	if name == "" {
		return errJSON(c, fiber.StatusBadRequest, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return errJSON(c, fiber.StatusBadRequest, "valid email is required")
	}
	if len(password) < 6 {
		return errJSON(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	var existing models.User
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return errJSON(c, fiber.StatusBadRequest, "email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errJSON(c, fiber.StatusInternalServerError, "internal server error")
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "internal server error")
	}

	u := models.User{
		Name:     name,
		Email:    email,
		Password: pw,
		IsActive: true,
	}

	if err := h.DB.Create(&u).Error; err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to register")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), h.Expires)
	if err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to create token")
	}
	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":                  u.ID,
			"name":                u.Name,
			"email":               u.Email,
			"has_created_profile": u.HasCreatedProfile,
		},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return errJSON(c, fiber.StatusBadRequest, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return errJSON(c, fiber.StatusBadRequest, "email and password are required")
	}

	var u models.User
	if err := h.DB.Where("email = ?", email).First(&u).Error; err != nil {
		// pesan sama untuk email tidak ada / password salah
		return errJSON(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	if !u.IsActive {
		return errJSON(c, fiber.StatusUnauthorized, "account is inactive")
	}
	if !utils.CheckPassword(u.Password, password) {
		return errJSON(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), h.Expires)
	if err != nil {
		return errJSON(c, fiber.StatusInternalServerError, "failed to create token")
	}
	h.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":                  u.ID,
			"name":                u.Name,
			"email":               u.Email,
			"has_created_profile": u.HasCreatedProfile,
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // hapus cookie
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := getAuth(c)
	if !ok {
		return errJSON(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", userID).Error; err != nil {
		return errJSON(c, fiber.StatusUnauthorized, "user not found")
	}

	return c.JSON(fiber.Map{
		"id":                  u.ID,
		"name":                u.Name,
		"email":               u.Email,
		"has_created_profile": u.HasCreatedProfile,
	})
}
