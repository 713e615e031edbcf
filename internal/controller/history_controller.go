package controller

import (
	"fmt"

	"medassist-be/internal/dto"
	"medassist-be/internal/pkg/serverutils"
	"medassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	ExportCSV(ctx *fiber.Ctx) error
	ExportPDF(ctx *fiber.Ctx) error
}

type historyController struct {
	service service.IHistoryService
	auth    fiber.Handler
}

func NewHistoryController(service service.IHistoryService, auth fiber.Handler) IHistoryController {
	return &historyController{service: service, auth: auth}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history", c.auth)
	h.Get("/", c.List)
	h.Delete("/", c.Clear)
	h.Get("/export/csv", c.ExportCSV)
	h.Get("/export/pdf", c.ExportPDF)
}

func (c *historyController) List(ctx *fiber.Ctx) error {
	_, username, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var page dto.HistoryPage
	if err := ctx.QueryParser(&page); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "limit and offset must be integers")
	}

	res, err := c.service.List(ctx.UserContext(), username, page)
	if err != nil {
		return statusOf(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *historyController) Clear(ctx *fiber.Ctx) error {
	_, username, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	res, err := c.service.Clear(ctx.UserContext(), username)
	if err != nil {
		return statusOf(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history cleared", res))
}

func (c *historyController) ExportCSV(ctx *fiber.Ctx) error {
	_, username, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	file, err := c.service.ExportCSV(ctx.UserContext(), username)
	if err != nil {
		return statusOf(err)
	}
	return sendAttachment(ctx, file)
}

func (c *historyController) ExportPDF(ctx *fiber.Ctx) error {
	_, username, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	file, err := c.service.ExportPDF(ctx.UserContext(), username, ctx.Query("date"))
	if err != nil {
		return statusOf(err)
	}
	return sendAttachment(ctx, file)
}

func sendAttachment(ctx *fiber.Ctx, file *dto.ExportFile) error {
	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return ctx.Send(file.Content)
}
