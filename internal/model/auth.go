package model

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionStatus struct {
	IsAdmin bool `json:"isAdmin"`
}
