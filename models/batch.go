package models

import "sync"

// BatchRequest is the payload for POST /api/v1/batch/audit.
type BatchRequest struct {
	// URLs is the list of pages to audit. Required.
	URLs []string `json:"urls" binding:"required,min=1,max=10,dive,url"`

	// UserAgent selects the identity profile used for every URL in the
	// batch. Defaults to "llm-comprehensive".
	UserAgent string `json:"user_agent,omitempty"`
}

// BatchResponse is the immediate response for POST /api/v1/batch/audit.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchResult is the per-URL outcome inside a batch. Exactly one of Report
// and Error is set; one URL's failure never affects its siblings.
type BatchResult struct {
	URL    string       `json:"url"`
	Report *AuditReport `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// BatchJob tracks an in-progress batch audit. Workers and the status
// endpoint touch the same job concurrently, so all access goes through the
// mutex-guarded methods below.
type BatchJob struct {
	mu         sync.RWMutex
	ID         string
	Status     string // "processing", "completed", "partial", "failed"
	Total      int
	Successful int
	Failed     int
	Results    []*BatchResult
	CreatedAt  int64 // unix timestamp; set once, read without the lock
}

// SetResult records the outcome for one URL slot.
func (j *BatchJob) SetResult(idx int, res *BatchResult) {
	j.mu.Lock()
	j.Results[idx] = res
	j.mu.Unlock()
}

// Finish publishes the final status and counters.
func (j *BatchJob) Finish(status string, successful, failed int) {
	j.mu.Lock()
	j.Status = status
	j.Successful = successful
	j.Failed = failed
	j.mu.Unlock()
}

// Snapshot returns a consistent view of the job for the status endpoint.
func (j *BatchJob) Snapshot() BatchStatusResponse {
	j.mu.RLock()
	defer j.mu.RUnlock()

	results := make([]*BatchResult, len(j.Results))
	copy(results, j.Results)

	return BatchStatusResponse{
		ID:         j.ID,
		Status:     j.Status,
		Total:      j.Total,
		Successful: j.Successful,
		Failed:     j.Failed,
		Results:    results,
	}
}

// BatchStatusResponse is the response for GET /api/v1/batch/:id.
type BatchStatusResponse struct {
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Results    []*BatchResult `json:"results,omitempty"`
}
