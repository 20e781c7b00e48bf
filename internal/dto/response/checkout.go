package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type CheckoutItemResponse struct {
	ID       string                  `json:"id"`
	ItemType entity.CheckoutItemType `json:"item_type"`
	Label    string                  `json:"label"`
	Qty      int                     `json:"qty"`
	Amount   float64                 `json:"amount"`
}

type CheckoutResponse struct {
	ID             string                 `json:"id"`
	AppointmentID  string                 `json:"appointment_id"`
	Subtotal       float64                `json:"subtotal"`
	Total          float64                `json:"total"`
	DiscountType   *entity.DiscountType   `json:"discount_type,omitempty"`
	DiscountValue  *float64               `json:"discount_value,omitempty"`
	DiscountReason *string                `json:"discount_reason,omitempty"`
	ConfirmedAt    *time.Time             `json:"confirmed_at,omitempty"`
	Items          []CheckoutItemResponse `json:"items"`
}

func CheckoutItemToResponse(item *entity.CheckoutItem) CheckoutItemResponse {
	return CheckoutItemResponse{
		ID:       item.ID.String(),
		ItemType: item.ItemType,
		Label:    item.Label,
		Qty:      item.Qty,
		Amount:   item.Amount,
	}
}

func CheckoutToResponse(checkout *entity.Checkout, items []entity.CheckoutItem) CheckoutResponse {
	res := CheckoutResponse{
		ID:             checkout.ID.String(),
		AppointmentID:  checkout.AppointmentID.String(),
		Subtotal:       checkout.Subtotal,
		Total:          checkout.Total,
		DiscountType:   checkout.DiscountType,
		DiscountValue:  checkout.DiscountValue,
		DiscountReason: checkout.DiscountReason,
		ConfirmedAt:    checkout.ConfirmedAt,
		Items:          make([]CheckoutItemResponse, 0, len(items)),
	}
	for i := range items {
		res.Items = append(res.Items, CheckoutItemToResponse(&items[i]))
	}
	return res
}
