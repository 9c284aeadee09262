package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/apperrors"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/models"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	_, err := h.users.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrBadRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "User already exists"})
		default:
			h.log.Errorw("register failed", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User has been created successfully"})
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	token, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "User not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password"})
		default:
			h.log.Errorw("login failed", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
	}
	return c.JSON(fiber.Map{"message": "User has been logged in successfully", "access_token": token})
}

func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	user, err := h.users.GetProfile(c.Context(), callerIdentity(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		h.log.Errorw("get profile failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(h.users.BuildProfileResponse("Profile has been found successfully", user))
}

func (h *Handlers) CreateProfile(c *fiber.Ctx) error {
	var p models.Profile
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	user, err := h.users.CreateProfile(c.Context(), callerIdentity(c), &p)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		h.log.Errorw("create profile failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(h.users.BuildProfileResponse("Profile has been created successfully", user))
}

func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var p models.Profile
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	user, err := h.users.UpdateProfile(c.Context(), callerIdentity(c), &p)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		h.log.Errorw("update profile failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(h.users.BuildProfileResponse("Profile has been updated successfully", user))
}
