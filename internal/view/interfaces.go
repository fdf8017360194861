package view

import (
	"context"

	"c4sg/internal/models"
)

// ProjectService is the part of the project API the detail view uses
type ProjectService interface {
	GetProject(ctx context.Context, projectID int64) (*models.Project, error)
	GetProjectsByOrganization(ctx context.Context, organizationID int64, status models.ProjectStatus) ([]models.Project, error)
	GetProjectsByUser(ctx context.Context, userID int64, status models.LinkStatus) ([]models.Project, error)
	LinkUserProject(ctx context.Context, projectID, userID int64, status models.LinkStatus) error
	DeleteProject(ctx context.Context, projectID int64) error
}

// OrganizationService looks up organizations
type OrganizationService interface {
	GetOrganization(ctx context.Context, organizationID int64) (*models.Organization, error)
	GetUserOrganizations(ctx context.Context, userID int64) ([]models.Organization, error)
}

// SkillService looks up the skills of a project
type SkillService interface {
	GetSkillsByProject(ctx context.Context, projectID int64) ([]string, error)
}

// Session is the identity and redirect state the actions need
type Session interface {
	Principal() models.Principal
	RememberRoute(route string) error
}

// LoginFunc starts the login flow
type LoginFunc func(ctx context.Context) error
