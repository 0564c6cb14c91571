package controller

import (
	"algodraft-be/internal/dto"
	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/internal/pkg/serverutils"
	"algodraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConfigController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type configController struct {
	configService service.IConfigService
}

func NewConfigController(configService service.IConfigService) IConfigController {
	return &configController{
		configService: configService,
	}
}

func (c *configController) RegisterRoutes(r fiber.Router) {
	r.Get("/config", c.Show)
	r.Post("/config", c.Update)
}

func (c *configController) Show(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show config", c.configService.Get()))
}

func (c *configController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindMalformedRequest, "invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.configService.Update(req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update config", res))
}
