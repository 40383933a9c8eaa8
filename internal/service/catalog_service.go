package service

import (
	"context"

	"github.com/Iamhamptom/foodfriend/internal/dto"
	"github.com/Iamhamptom/foodfriend/internal/pkg/serverutils"
	"github.com/Iamhamptom/foodfriend/pkg/catalog"
	"github.com/Iamhamptom/foodfriend/pkg/shoppinglist"

	"github.com/gofiber/fiber/v2"
)

type ICatalogService interface {
	Search(ctx context.Context, storeKey, query string, maxPrice float64) (*dto.SearchStoresResponse, error)
	PriceList(ctx context.Context, req *dto.PriceListRequest) (*dto.PriceListResponse, error)
}

type catalogService struct {
	registry *catalog.Registry
	pricer   *shoppinglist.Pricer
}

func NewCatalogService(registry *catalog.Registry) ICatalogService {
	return &catalogService{
		registry: registry,
		pricer:   shoppinglist.NewPricer(registry),
	}
}

// Search queries one store when storeKey is set, otherwise every searchable
// store in turn.
func (s *catalogService) Search(ctx context.Context, storeKey, query string, maxPrice float64) (*dto.SearchStoresResponse, error) {
	var adapters []catalog.StoreAdapter
	if storeKey != "" {
		adapter, ok := s.registry.Adapter(storeKey)
		if !ok {
			return nil, serverutils.NewApiError(fiber.StatusNotFound, "unknown store")
		}
		adapters = []catalog.StoreAdapter{adapter}
	} else {
		adapters = s.registry.Adapters()
	}

	res := &dto.SearchStoresResponse{Query: query, Offers: []dto.StoreOfferDTO{}}
	for _, adapter := range adapters {
		offers, err := adapter.Search(ctx, query, maxPrice)
		if err != nil {
			return nil, err
		}
		for _, offer := range offers {
			res.Offers = append(res.Offers, dto.StoreOfferDTO{
				StoreKey: offer.StoreKey,
				Store:    offer.Store,
				Name:     offer.Name,
				Price:    offer.Price,
				Currency: offer.Currency,
				Size:     offer.Size,
			})
		}
	}
	return res, nil
}

func (s *catalogService) PriceList(ctx context.Context, req *dto.PriceListRequest) (*dto.PriceListResponse, error) {
	result, err := s.pricer.Price(ctx, req.Items, req.MaxPricePerItem)
	if err != nil {
		return nil, err
	}

	res := &dto.PriceListResponse{Total: result.Total, Items: make([]dto.PricedItemDTO, len(result.Items))}
	for i, item := range result.Items {
		res.Items[i] = dto.PricedItemDTO{
			Name:     item.Name,
			Store:    item.Store,
			StoreKey: item.StoreKey,
			Price:    item.Price,
			Found:    item.Found,
		}
	}
	return res, nil
}
