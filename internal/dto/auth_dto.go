package dto

import "github.com/aiopscouncil/council-backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Company  string `json:"company"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a session token plus the public user projection.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type ProfileResponse struct {
	User models.User `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
