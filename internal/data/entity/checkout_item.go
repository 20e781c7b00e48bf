package entity

import (
	"github.com/google/uuid"
)

type CheckoutItemType string

const (
	CheckoutItemTypeService    CheckoutItemType = "service"
	CheckoutItemTypeFee        CheckoutItemType = "fee"
	CheckoutItemTypeAddon      CheckoutItemType = "addon"
	CheckoutItemTypeAdjustment CheckoutItemType = "adjustment"
)

type CheckoutItem struct {
	BaseSimple
	TenantID   uuid.UUID        `db:"tenant_id"`
	CheckoutID uuid.UUID        `db:"checkout_id"`
	ItemType   CheckoutItemType `db:"item_type"`
	Label      string           `db:"label"`
	Qty        int              `db:"qty"`
	Amount     float64          `db:"amount"`
	SortOrder  int              `db:"sort_order"`
}
