package dto

type StoreOfferDTO struct {
	StoreKey string  `json:"store_key"`
	Store    string  `json:"store"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Size     string  `json:"size,omitempty"`
}

type SearchStoresResponse struct {
	Query  string          `json:"query"`
	Offers []StoreOfferDTO `json:"offers"`
}

type PriceListRequest struct {
	Items           []string `json:"items" validate:"required,min=1,max=50,dive,required"`
	MaxPricePerItem float64  `json:"max_price_per_item" validate:"gte=0"`
}

type PricedItemDTO struct {
	Name     string  `json:"name"`
	Store    string  `json:"store,omitempty"`
	StoreKey string  `json:"store_key,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Found    bool    `json:"found"`
}

type PriceListResponse struct {
	Items []PricedItemDTO `json:"items"`
	Total float64         `json:"total"`
}
