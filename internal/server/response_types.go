// file: internal/server/response_types.go
// version: 2.0.0
// guid: 7f8a9b0c-1d2e-3f4a-5b6c-7d8e9f0a1b2c

package server

// AutofillRequest is the body accepted by POST /api/autofill
type AutofillRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// HealthResponse reports liveness and the configured upstream providers
type HealthResponse struct {
	Status      string `json:"status"`
	Summarizer  string `json:"summarizer"`
	CoverSource string `json:"coverSource"`
}
