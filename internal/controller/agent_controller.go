package controller

import (
	"algodraft-be/internal/dto"
	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/internal/pkg/serverutils"
	"algodraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService service.IAgentService
}

func NewAgentController(agentService service.IAgentService) IAgentController {
	return &agentController{
		agentService: agentService,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	r.Post("/query", c.Query)
	r.Post("/chat", c.Chat)
	r.Post("/generate", c.Generate)
	r.Post("/analyze", c.Analyze)
	r.Get("/sessions/:id", c.ShowSession)
	r.Delete("/sessions/:id", c.DeleteSession)
}

func (c *agentController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindMalformedRequest, "invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Query(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query", res))
}

func (c *agentController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindMalformedRequest, "invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Chat(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *agentController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindMalformedRequest, "invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Generate(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate", res))
}

func (c *agentController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindMalformedRequest, "invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Analyze(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze", res))
}

func (c *agentController) ShowSession(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	res := c.agentService.GetSessionHistory(id)
	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *agentController) DeleteSession(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	res := c.agentService.DeleteSession(id)
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", res))
}
