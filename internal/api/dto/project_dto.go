package dto

import "time"

// ProjectRequest payload for creating or replacing a project.
type ProjectRequest struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Budget      string   `json:"budget"`
	Duration    string   `json:"duration"`
	Location    string   `json:"location"`
	Style       string   `json:"style"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ImageURLs   []string `json:"imageUrls"`
}

// ProjectResponse is the API view of a project.
type ProjectResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Budget      string    `json:"budget"`
	Duration    string    `json:"duration"`
	Location    string    `json:"location"`
	Style       string    `json:"style,omitempty"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	ImageURLs   []string  `json:"imageUrls"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
