package view

import (
	"fmt"
	"time"

	"c4sg/internal/models"
)

// ToastDuration is how long a transient notification stays visible
const ToastDuration = 4 * time.Second

// ListRoute is where the user lands after deleting a project
const ListRoute = "project/list/projects"

// Route returns the route of a project detail page
func Route(projectID int64) string {
	return fmt.Sprintf("project/view/%d", projectID)
}

// EditRoute returns the route of a project edit page
func EditRoute(projectID int64) string {
	return fmt.Sprintf("project/edit/%d", projectID)
}

// Buttons holds the visibility of the detail page controls
type Buttons struct {
	Share    bool `json:"share" yaml:"share"`
	Apply    bool `json:"apply" yaml:"apply"`
	Bookmark bool `json:"bookmark" yaml:"bookmark"`
	Edit     bool `json:"edit" yaml:"edit"`
	Delete   bool `json:"delete" yaml:"delete"`

	// Applied and Bookmarked disable the matching control
	Applied    bool `json:"applied" yaml:"applied"`
	Bookmarked bool `json:"bookmarked" yaml:"bookmarked"`
}

// ProjectView is everything the project detail page renders. Fields whose fetch failed stay nil.
type ProjectView struct {
	Project              *models.Project      `json:"project" yaml:"project"`
	Organization         *models.Organization `json:"organization,omitempty" yaml:"organization,omitempty"`
	CategoryName         string               `json:"categoryName,omitempty" yaml:"category_name,omitempty"`
	OrganizationProjects []models.Project     `json:"organizationProjects,omitempty" yaml:"organization_projects,omitempty"`
	Buttons              Buttons              `json:"buttons" yaml:"buttons"`
}

// Notification is a transient message shown to the user
type Notification struct {
	Message  string
	Duration time.Duration
}

func toast(message string) *Notification {
	return &Notification{Message: message, Duration: ToastDuration}
}

// Outcome describes what a user action produced
type Outcome struct {
	// Notification to show, if any
	Notification *Notification

	// LoginRequired is set when the action started the login flow instead of running
	LoginRequired bool

	// Navigate is the route to go to next, if any
	Navigate string
}
