package dto

// CreateAuthenticationTokenRequestBody defines a request body for
// CreateAuthenticationToken service.
type CreateAuthenticationTokenRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
