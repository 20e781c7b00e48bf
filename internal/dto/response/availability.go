package response

type AvailableSlotsResponse struct {
	Date        string   `json:"date"`
	ServiceID   string   `json:"service_id"`
	IsHomeVisit bool     `json:"is_home_visit"`
	Slots       []string `json:"slots"`
}

type SkippedBlockEntry struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	Reason    string `json:"reason"`
}

type BulkCreateBlocksResponse struct {
	Created int                 `json:"created"`
	Skipped []SkippedBlockEntry `json:"skipped"`
}

type BulkDeleteBlocksResponse struct {
	Deleted int64 `json:"deleted"`
}
