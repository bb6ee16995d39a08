package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"superadmin/models"
	"superadmin/services"
)

const (
	msgUserIDRequired = "userId and newPassword required"
	msgEmailRequired  = "email and newPassword required"
	msgUserNotFound   = "User not found"
)

type resetPasswordRequest struct {
	UserID      string `json:"userId" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type emailResetRequest struct {
	Email       string `json:"email" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Handler serves the admin user routes.
type Handler struct {
	service  *services.AdminService
	validate *validator.Validate
	log      *logrus.Logger
}

func NewHandler(service *services.AdminService, logger *logrus.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		log:      logger,
	}
}

// Register mounts the admin routes on router.
func (h *Handler) Register(router fiber.Router) {
	router.Get("/users", h.GetUsers)
	router.Post("/reset-password", h.ResetPassword)
	router.Post("/reset-password-by-email", h.ResetPasswordByEmail)
	router.Post("/manual-password-reset", h.ManualPasswordReset)
}

// GetUsers returns one provider page of users
func (h *Handler) GetUsers(c *fiber.Ctx) error {
	page := parsePage(c.Query("page"))

	users, err := h.service.ListUsers(c.UserContext(), page)
	if err != nil {
		h.log.WithError(err).WithField("page", page).Warn("list users failed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.ProviderMessage(err),
		})
	}

	h.log.WithFields(logrus.Fields{"page": page, "count": len(users)}).Debug("listed users")
	return c.JSON(fiber.Map{
		"users": users,
	})
}

// parsePage reads the leading integer of raw, so "2abc" and "2.5" are page
// 2. Anything without leading digits, and 0, is page 1.
func parsePage(raw string) int {
	raw = strings.TrimSpace(raw)

	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}

	page, err := strconv.Atoi(raw[:end])
	if err != nil || page == 0 {
		return 1
	}
	return page
}

// ResetPassword sets a new password for a user id
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if !h.parse(c, &req) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgUserIDRequired,
		})
	}

	user, err := h.service.ResetPassword(c.UserContext(), req.UserID, req.NewPassword)
	if err != nil {
		h.log.WithError(err).WithField("user_id", req.UserID).Warn("password reset failed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.ProviderMessage(err),
		})
	}

	h.log.WithField("user_id", req.UserID).Info("password reset")
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// ResetPasswordByEmail is the automated reset: it answers with the updated user.
func (h *Handler) ResetPasswordByEmail(c *fiber.Ctx) error {
	return h.findAndUpdate(c, userEnvelope{})
}

// ManualPasswordReset is the frontend-facing reset: it answers with a
// success flag and an optional message only.
func (h *Handler) ManualPasswordReset(c *fiber.Ctx) error {
	return h.findAndUpdate(c, messageEnvelope{})
}

func (h *Handler) findAndUpdate(c *fiber.Ctx, env envelope) error {
	var req emailResetRequest
	if !h.parse(c, &req) {
		return c.Status(fiber.StatusBadRequest).JSON(env.failure(msgEmailRequired))
	}

	entry := h.log.WithFields(logrus.Fields{
		"email": req.Email,
		"route": c.Path(),
	})
	entry.Info("password reset by email requested")

	user, err := h.service.ResetPasswordByEmail(c.UserContext(), req.Email, req.NewPassword)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		entry.Warn("user not found for email")
		return c.Status(fiber.StatusNotFound).JSON(env.failure(msgUserNotFound))
	case err != nil:
		entry.WithError(err).Error("password reset by email failed")
		return c.Status(fiber.StatusBadRequest).JSON(env.failure(services.ProviderMessage(err)))
	}

	entry.Info("password updated")
	return c.JSON(env.success(user))
}

// parse decodes the JSON body into req and reports whether every required
// field is present. An unreadable body counts as missing fields.
func (h *Handler) parse(c *fiber.Ctx, req any) bool {
	if err := c.BodyParser(req); err != nil {
		return false
	}
	return h.validate.Struct(req) == nil
}

// envelope shapes the find-and-update responses.
type envelope interface {
	success(user *models.User) fiber.Map
	failure(message string) fiber.Map
}

type userEnvelope struct{}

func (userEnvelope) success(user *models.User) fiber.Map {
	return fiber.Map{"success": true, "user": user}
}

func (userEnvelope) failure(message string) fiber.Map {
	return fiber.Map{"error": message}
}

type messageEnvelope struct{}

func (messageEnvelope) success(*models.User) fiber.Map {
	return fiber.Map{"success": true}
}

func (messageEnvelope) failure(message string) fiber.Map {
	return fiber.Map{"success": false, "message": message}
}
