// Package projectlist drives the project list screen: loading, keyword search, paging,
// quick add and delete.
package projectlist

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"c4sg/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// searchBatchSize is the page size used while walking every page of a search
	searchBatchSize = 100

	imageFetchLimit = 4
)

// ProjectService is the part of the project API the list uses
type ProjectService interface {
	SearchProjects(ctx context.Context, q models.SearchQuery) (*models.ProjectPage, error)
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID int64) error
	GetProjectsByOrganization(ctx context.Context, organizationID int64, status models.ProjectStatus) ([]models.Project, error)
	GetProjectsByUser(ctx context.Context, userID int64, status models.LinkStatus) ([]models.Project, error)
	GetProjectImage(ctx context.Context, projectID int64) (string, error)
}

// Controller holds the list state. It is safe to call from the UI loop and from
// background commands at the same time.
type Controller struct {
	service ProjectService
	logger  logrus.FieldLogger

	// ctx lives as long as the screen; Close cancels it
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	projects []models.Project
	page     int
	pageSize int
}

// NewController creates a list controller bound to parent
func NewController(parent context.Context, service ProjectService, pageSize int, logger logrus.FieldLogger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Controller{
		service:  service,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		page:     1,
		pageSize: pageSize,
	}
}

// Close releases the controller; pending loads finish without touching the list
func (c *Controller) Close() {
	c.cancel()
}

// Load fetches every project with its image. Role-based filtering is deliberately not applied.
func (c *Controller) Load() error {
	projects, err := c.searchAll(models.SearchQuery{})
	if err != nil {
		c.logger.WithError(err).Error("failed to load projects")
		return fmt.Errorf("error listing projects: %w", err)
	}
	c.loadImages(projects)
	c.replace(projects)
	return nil
}

// Search replaces the list with the projects matching keyword. A blank keyword sends no
// request and keeps the list; the returned bool reports whether a search ran.
func (c *Controller) Search(keyword string) (bool, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false, nil
	}

	projects, err := c.searchAll(models.SearchQuery{Keyword: keyword})
	if err != nil {
		c.logger.WithError(err).WithField("keyword", keyword).Error("failed to search projects")
		return true, fmt.Errorf("error searching projects: %w", err)
	}
	c.loadImages(projects)
	c.replace(projects)
	return true, nil
}

// searchAll walks the search pages until the backend's total is reached
func (c *Controller) searchAll(q models.SearchQuery) ([]models.Project, error) {
	q.Size = searchBatchSize
	projects := make([]models.Project, 0, searchBatchSize)
	for q.Page = 1; ; q.Page++ {
		page, err := c.service.SearchProjects(c.ctx, q)
		if err != nil {
			return nil, err
		}
		projects = append(projects, page.Data...)
		if len(page.Data) == 0 || len(projects) >= page.TotalItems {
			return projects, nil
		}
	}
}

// loadImages fills in the image URL of each project. A failed fetch leaves that image unset.
func (c *Controller) loadImages(projects []models.Project) {
	g, gctx := errgroup.WithContext(c.ctx)
	g.SetLimit(imageFetchLimit)
	for i := range projects {
		project := &projects[i]
		g.Go(func() error {
			url, err := c.service.GetProjectImage(gctx, project.ID)
			if err != nil {
				c.logger.WithError(err).WithField("project_id", project.ID).Warn("failed to load project image")
				return nil
			}
			project.Image = url
			return nil
		})
	}
	_ = g.Wait()
}

// Add creates a project with the given name for the organization and reloads the list.
// A blank name is ignored.
func (c *Controller) Add(name string, organizationID int64) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	created, err := c.service.CreateProject(c.ctx, &models.Project{
		Name:           name,
		OrganizationID: organizationID,
	})
	if err != nil {
		c.logger.WithError(err).WithField("name", name).Error("failed to create project")
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	if err := c.Load(); err != nil {
		return created, err
	}
	return created, nil
}

// Delete removes a project and reloads the list
func (c *Controller) Delete(projectID int64) error {
	if err := c.service.DeleteProject(c.ctx, projectID); err != nil {
		c.logger.WithError(err).WithField("project_id", projectID).Error("failed to delete project")
		return fmt.Errorf("error deleting project: %w", err)
	}
	return c.Load()
}

// ByOrganization replaces the list with an organization's projects
func (c *Controller) ByOrganization(organizationID int64, status models.ProjectStatus) error {
	projects, err := c.service.GetProjectsByOrganization(c.ctx, organizationID, status)
	if err != nil {
		c.logger.WithError(err).WithField("organization_id", organizationID).Error("failed to load organization projects")
		return fmt.Errorf("error listing organization projects: %w", err)
	}
	c.replace(projects)
	return nil
}

// ByUser replaces the list with the projects a user applied to or bookmarked
func (c *Controller) ByUser(userID int64, status models.LinkStatus) error {
	projects, err := c.service.GetProjectsByUser(c.ctx, userID, status)
	if err != nil {
		c.logger.WithError(err).WithField("user_id", userID).Error("failed to load user projects")
		return fmt.Errorf("error listing user projects: %w", err)
	}
	c.replace(projects)
	return nil
}

// Projects returns a copy of the whole list
func (c *Controller) Projects() []models.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Project(nil), c.projects...)
}

// SetPage moves to the given 1-based page
func (c *Controller) SetPage(page int) Pager {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := Paginate(len(c.projects), page, c.pageSize)
	c.page = p.CurrentPage
	return p
}

// Pager returns the pager of the current page
func (c *Controller) Pager() Pager {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Paginate(len(c.projects), c.page, c.pageSize)
}

// PageItems returns the projects of the current page
func (c *Controller) PageItems() []models.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p := Paginate(len(c.projects), c.page, c.pageSize)
	if p.StartIndex < 0 {
		return nil
	}
	return append([]models.Project(nil), c.projects[p.StartIndex:p.EndIndex+1]...)
}

func (c *Controller) replace(projects []models.Project) {
	if c.ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = projects
	c.page = 1
}
