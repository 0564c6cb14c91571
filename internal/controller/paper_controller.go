package controller

import (
	"algodraft-be/internal/dto"
	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/internal/pkg/serverutils"
	"algodraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaperController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type paperController struct {
	paperService service.IPaperService
}

func NewPaperController(paperService service.IPaperService) IPaperController {
	return &paperController{
		paperService: paperService,
	}
}

func (c *paperController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Post("/remove-file", c.Remove)
	r.Get("/papers", c.List)
}

func (c *paperController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.Wrap(apperror.KindMalformedRequest, "multipart field 'file' is required", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperror.Wrap(apperror.KindMalformedRequest, "failed to open uploaded file", err)
	}
	defer file.Close()

	res, err := c.paperService.Upload(ctx.Context(), fileHeader.Filename, file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload paper", res))
}

func (c *paperController) Remove(ctx *fiber.Ctx) error {
	var req dto.RemovePaperRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindMalformedRequest, "invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.paperService.Remove(ctx.Context(), req.Filename); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove paper", nil))
}

func (c *paperController) List(ctx *fiber.Ctx) error {
	res, err := c.paperService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list papers", res))
}
