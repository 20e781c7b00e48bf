package request

type BlockEntryRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type BulkCreateBlocksRequest struct {
	BlockType string              `json:"block_type" validate:"required,oneof=shift manual"`
	Entries   []BlockEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type BulkDeleteBlocksRequest struct {
	Month     string  `json:"month" validate:"required,datetime=2006-01"`
	BlockType *string `json:"block_type,omitempty" validate:"omitempty,oneof=shift manual"`
}
