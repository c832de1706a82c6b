package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Token string `json:"token"`
}

// LoginRequest принимает в Identifier email или username
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

type VerifyTokenResponse struct {
	IsValid  bool   `json:"isValid"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

type UserDataResponse struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinDate time.Time `json:"joinDate"`
}
