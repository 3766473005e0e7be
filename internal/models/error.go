package models

// ErrorResponse represents an error returned by the API
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}
