package dto

type TokenRequestDTO struct {
	ServiceID string `json:"service_id" validate:"required,max=64" example:"shop"`
	APIKey    string `json:"api_key" validate:"required,min=16" example:"c2VjcmV0LWtleS0xMjM0NTY"`
}

type TokenResponseDTO struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type" example:"Bearer"`
	ExpiresIn int    `json:"expires_in" example:"900"`
}
