package dto

import "time"

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Redirect string `json:"redirect"`
}

// RegisterRequest payload for designer sign-up.
type RegisterRequest struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	FullName        string   `json:"fullName"`
	Phone           string   `json:"phone"`
	City            string   `json:"city"`
	Experience      string   `json:"experience"`
	Services        []string `json:"services"`
	BudgetRange     string   `json:"budgetRange"`
	Portfolio       string   `json:"portfolio"`
	Instagram       string   `json:"instagram"`
	Website         string   `json:"website"`
	Styles          []string `json:"styles"`
	LeadsPreference string   `json:"leadsPreference"`
	Notes           string   `json:"notes"`
	ImageURLs       []string `json:"imageUrls"`
}

// SessionResponse describes the session the cookies now carry.
type SessionResponse struct {
	UID       string    `json:"uid"`
	Role      string    `json:"role"`
	Redirect  string    `json:"redirect"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthPageResponse is returned by GET /login and GET /register.
type AuthPageResponse struct {
	Page     string `json:"page"`
	Redirect string `json:"redirect,omitempty"`
}
