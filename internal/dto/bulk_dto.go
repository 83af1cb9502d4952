package dto

// BulkDeleteRequest targets a set of record IDs.
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

// BulkResult tallies the independent per-item outcomes of a bulk operation.
// Partial success is expected; failures never abort the batch.
type BulkResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
