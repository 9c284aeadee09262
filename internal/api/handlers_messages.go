package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/apperrors"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/middleware"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/models"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/service"
)

type Handlers struct {
	users    *service.UserService
	messages *service.MessageService
	log      *zap.SugaredLogger
}

func NewHandlers(users *service.UserService, messages *service.MessageService, log *zap.SugaredLogger) *Handlers {
	return &Handlers{users: users, messages: messages, log: log}
}

func callerIdentity(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalsIdentity).(string)
	return id
}

type sendMessageRequest struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

// SendMessage handles POST /api/sendMessage.
func (h *Handlers) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	msg, err := h.messages.SendMessage(c.Context(), req.Sender, req.Receiver, req.Content, callerIdentity(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sender or Receiver not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to send the messages"})
		default:
			h.log.Errorw("send message failed", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(h.messages.BuildMessageResponse(msg))
}

// ViewMessages handles GET /api/viewMessages?sender=&receiver=.
func (h *Handlers) ViewMessages(c *fiber.Ctx) error {
	sender := c.Query("sender")
	receiver := c.Query("receiver")

	msgs, err := h.messages.GetMessages(c.Context(), sender, receiver, callerIdentity(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sender or Receiver not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not allowed to retrieve the messages"})
		default:
			h.log.Errorw("view messages failed", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
	}

	out := make([]models.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, h.messages.BuildMessageResponse(m))
	}
	return c.JSON(out)
}
