package domain

import "time"

// AccountStatus tracks admin review of a designer profile.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
)

// Account is the single profile record of a subject. Role is a column, so a
// subject can never hold more than one role.
type Account struct {
	SubjectID       string
	Role            Role
	Email           string
	FullName        string
	Phone           string
	City            string
	Experience      string
	Services        []string
	BudgetRange     string
	Portfolio       string
	Instagram       string
	Website         string
	Styles          []string
	LeadsPreference string
	Notes           string
	ImageURLs       []string
	Status          AccountStatus
	Views           int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
