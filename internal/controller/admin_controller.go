package controller

import (
	"medassist-be/internal/dto"
	"medassist-be/internal/pkg/serverutils"
	"medassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IIngestService
	auth    fiber.Handler
}

func NewAdminController(service service.IIngestService, auth fiber.Handler) IAdminController {
	return &adminController{service: service, auth: auth}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", c.auth)
	h.Post("/ingest", c.Ingest)
}

// Ingest accepts a multipart "file" field and queues it for background ingestion.
func (c *adminController) Ingest(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	f, err := header.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := c.service.Enqueue(ctx.UserContext(), header.Filename, f)
	if err != nil {
		return statusOf(err)
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.Response[*dto.IngestAcceptedResponse]{
		Success: true,
		Code:    fiber.StatusAccepted,
		Message: "Document queued for ingestion",
		Data:    res,
	})
}
