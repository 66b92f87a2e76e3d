package domain

import "time"

// ProjectCategory classifies the kind of space a project covers.
type ProjectCategory string

const (
	ProjectCategoryInterior ProjectCategory = "Interior"
	ProjectCategoryExterior ProjectCategory = "Exterior"
	ProjectCategoryBoth     ProjectCategory = "Both"
)

// Valid reports whether c is a supported category.
func (c ProjectCategory) Valid() bool {
	switch c {
	case ProjectCategoryInterior, ProjectCategoryExterior, ProjectCategoryBoth:
		return true
	}
	return false
}

// ProjectStatus controls public visibility of a showcase project.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "Draft"
	ProjectStatusPublished ProjectStatus = "Published"
)

// Valid reports whether s is a supported status.
func (s ProjectStatus) Valid() bool {
	return s == ProjectStatusDraft || s == ProjectStatusPublished
}

// Project is a showcase entry owned by a designer.
type Project struct {
	ID          string
	OwnerID     string
	Title       string
	Category    ProjectCategory
	Budget      string
	Duration    string
	Location    string
	Style       string
	Status      ProjectStatus
	Description string
	Tags        []string
	ImageURLs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DashboardStats aggregates admin dashboard counters.
type DashboardStats struct {
	TotalDesigners     int64
	TotalProjects      int64
	TotalDesignerViews int64
	PendingDesigners   int64
	PublishedProjects  int64
}
