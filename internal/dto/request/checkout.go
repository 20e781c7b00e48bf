package request

type CheckoutItemRequest struct {
	ItemType string  `json:"item_type" validate:"required,oneof=service fee addon adjustment"`
	Label    string  `json:"label" validate:"required,max=120"`
	Qty      int     `json:"qty" validate:"min=0"`
	Amount   float64 `json:"amount" validate:"required"`
}

type SetCheckoutItemsRequest struct {
	Items []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ApplyDiscountRequest struct {
	DiscountType string  `json:"discount_type" validate:"required,oneof=value pct"`
	Value        float64 `json:"value" validate:"required,gt=0"`
	Reason       *string `json:"reason,omitempty" validate:"omitempty,max=200"`
}
