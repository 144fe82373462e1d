package api

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
