package dto

import "time"

// AccountResponse is the profile view of an account.
type AccountResponse struct {
	UID             string    `json:"uid"`
	Role            string    `json:"role"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	Phone           string    `json:"phone,omitempty"`
	City            string    `json:"city,omitempty"`
	Experience      string    `json:"experience,omitempty"`
	Services        []string  `json:"services"`
	BudgetRange     string    `json:"budgetRange,omitempty"`
	Portfolio       string    `json:"portfolio,omitempty"`
	Instagram       string    `json:"instagram,omitempty"`
	Website         string    `json:"website,omitempty"`
	Styles          []string  `json:"styles"`
	LeadsPreference string    `json:"leadsPreference,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	ImageURLs       []string  `json:"imageUrls"`
	Status          string    `json:"status"`
	Views           int64     `json:"views"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PublicDesignerResponse omits contact details that are private to the designer.
type PublicDesignerResponse struct {
	UID        string   `json:"uid"`
	FullName   string   `json:"fullName"`
	City       string   `json:"city,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Services   []string `json:"services"`
	Styles     []string `json:"styles"`
	Portfolio  string   `json:"portfolio,omitempty"`
	Instagram  string   `json:"instagram,omitempty"`
	Website    string   `json:"website,omitempty"`
	ImageURLs  []string `json:"imageUrls"`
	Views      int64    `json:"views"`
}

// PortfolioRequest payload for PUT /designer-dashboard/portfolio.
type PortfolioRequest struct {
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

// DesignerDashboardResponse is the designer landing payload.
type DesignerDashboardResponse struct {
	Profile           AccountResponse `json:"profile"`
	TotalProjects     int64           `json:"totalProjects"`
	PublishedProjects int64           `json:"publishedProjects"`
}

// AdminStatsResponse holds the admin dashboard totals.
type AdminStatsResponse struct {
	TotalDesigners     int64 `json:"totalDesigners"`
	TotalProjects      int64 `json:"totalProjects"`
	TotalDesignerViews int64 `json:"totalDesignerViews"`
	PendingDesigners   int64 `json:"pendingDesigners"`
	PublishedProjects  int64 `json:"publishedProjects"`
}
