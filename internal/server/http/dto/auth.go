package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// ErrorResponse is the body of every failed request that carries a message.
type ErrorResponse struct {
	Error string `json:"error"`
}
