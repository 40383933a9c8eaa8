package controller

import (
	"strconv"

	"github.com/Iamhamptom/foodfriend/internal/dto"
	"github.com/Iamhamptom/foodfriend/internal/pkg/serverutils"
	"github.com/Iamhamptom/foodfriend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStoreController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	PriceList(ctx *fiber.Ctx) error
}

type storeController struct {
	catalogService service.ICatalogService
}

func NewStoreController(catalogService service.ICatalogService) IStoreController {
	return &storeController{
		catalogService: catalogService,
	}
}

func (c *storeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/store/v1")
	h.Get("search", c.Search)
	h.Post("price-list", c.PriceList)
}

func (c *storeController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return serverutils.NewApiError(fiber.StatusBadRequest, "query parameter 'q' is required")
	}
	storeKey := ctx.Query("store")

	maxPrice := 0.0
	if raw := ctx.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return serverutils.NewApiError(fiber.StatusBadRequest, "invalid max_price")
		}
		maxPrice = v
	}

	res, err := c.catalogService.Search(ctx.Context(), storeKey, query, maxPrice)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search stores", res))
}

func (c *storeController) PriceList(ctx *fiber.Ctx) error {
	var req dto.PriceListRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.PriceList(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success price shopping list", res))
}
