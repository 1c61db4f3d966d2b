package controller

import (
	"github.com/gofiber/fiber/v2"

	"smart-receipt-be/internal/pkg/serverutils"
	"smart-receipt-be/internal/service"
)

type ICacheController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
	NamespaceStats(ctx *fiber.Ctx) error
	Invalidate(ctx *fiber.Ctx) error
}

type cacheController struct {
	cacheService service.ICacheService
}

func NewCacheController(cacheService service.ICacheService) ICacheController {
	return &cacheController{
		cacheService: cacheService,
	}
}

func (c *cacheController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cache/v1")
	h.Get("stats", c.Stats)
	h.Get("stats/:namespace", c.NamespaceStats)
	h.Delete(":namespace", c.Invalidate)
}

func (c *cacheController) Stats(ctx *fiber.Ctx) error {
	res, err := c.cacheService.Stats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cache stats", res))
}

func (c *cacheController) NamespaceStats(ctx *fiber.Ctx) error {
	namespace := ctx.Params("namespace")

	res, err := c.cacheService.NamespaceStats(ctx.Context(), namespace)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success namespace cache stats", res))
}

func (c *cacheController) Invalidate(ctx *fiber.Ctx) error {
	namespace := ctx.Params("namespace")

	res, err := c.cacheService.Invalidate(ctx.Context(), namespace)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success invalidate namespace", res))
}
