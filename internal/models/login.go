package models

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username" validate:"required"`

	// Password
	// required: true
	// example: secret
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// JWT token
	// example: JWT_TOKEN
	Token string `json:"token"`
}
