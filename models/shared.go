package models

// PurgePayload is the asynq payload of a storage purge task.
type PurgePayload struct {
	OwnerID   string   `json:"ownerId"`
	PublicIDs []string `json:"publicIds"`
	Reason    string   `json:"reason"`
}

// Pagination describes a page of search results.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}
