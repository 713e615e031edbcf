package controller

import (
	"medassist-be/internal/dto"
	"medassist-be/internal/pkg/serverutils"
	"medassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	auth    fiber.Handler
	limit   fiber.Handler
}

func NewChatController(service service.IChatService, auth, limit fiber.Handler) IChatController {
	return &chatController{service: service, auth: auth, limit: limit}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.auth, c.limit, c.Ask)
}

// Ask always answers with 200: a blank query comes back as the validation message.
func (c *chatController) Ask(ctx *fiber.Ctx) error {
	_, username, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var req dto.ChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), username, &req)
	if err != nil {
		return statusOf(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer generated", res))
}
