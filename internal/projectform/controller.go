// Package projectform drives the project edit screen
package projectform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"c4sg/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrNotLoaded is returned when the form is used before a project was loaded
var ErrNotLoaded = errors.New("no project loaded")

// ProjectService is the part of the project API the form uses
type ProjectService interface {
	GetProject(ctx context.Context, projectID int64) (*models.Project, error)
	GetProjectImage(ctx context.Context, projectID int64) (string, error)
	UpdateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	SaveProjectImage(ctx context.Context, projectID int64, imgURL string) error
}

// SkillService reads the skill catalog and reads or replaces project skills
type SkillService interface {
	GetSkills(ctx context.Context) ([]models.Skill, error)
	GetSkillsByProject(ctx context.Context, projectID int64) ([]string, error)
	UpdateSkills(ctx context.Context, projectID int64, skills []string) error
}

// SubmitResult reports the project update and the skills update separately; either may
// fail while the other succeeds.
type SubmitResult struct {
	Project    *models.Project
	ProjectErr error
	SkillsErr  error
}

// OK reports whether both updates succeeded
func (r *SubmitResult) OK() bool {
	return r.ProjectErr == nil && r.SkillsErr == nil
}

// Controller holds the state of one edit screen
type Controller struct {
	projects ProjectService
	skills   SkillService
	logger   logrus.FieldLogger
	validate *validator.Validate

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	project       *models.Project
	form          Form
	image         string
	projectSkills []string
	catalog       []string
}

// NewController creates an edit controller bound to parent
func NewController(parent context.Context, projects ProjectService, skills SkillService, logger logrus.FieldLogger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Controller{
		projects: projects,
		skills:   skills,
		logger:   logger,
		validate: newValidator(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Close cancels pending requests of the controller
func (c *Controller) Close() {
	c.cancel()
}

// Load fetches the project, its image, its skills and the skill catalog at the same time.
// Only a failed project fetch is returned; the other failures are logged and leave their
// part empty.
func (c *Controller) Load(projectID int64) error {
	log := c.logger.WithField("project_id", projectID)

	var (
		project  *models.Project
		image    string
		selected []string
		catalog  []string
	)

	g, ctx := errgroup.WithContext(c.ctx)
	g.Go(func() error {
		p, err := c.projects.GetProject(ctx, projectID)
		if err != nil {
			log.WithError(err).Error("failed to load project")
			return fmt.Errorf("error getting project: %w", err)
		}
		project = p
		return nil
	})
	g.Go(func() error {
		img, err := c.projects.GetProjectImage(ctx, projectID)
		if err != nil {
			log.WithError(err).Warn("failed to load project image")
			return nil
		}
		image = img
		return nil
	})
	g.Go(func() error {
		names, err := c.skills.GetSkillsByProject(ctx, projectID)
		if err != nil {
			log.WithError(err).Warn("failed to load project skills")
			return nil
		}
		selected = names
		return nil
	})
	g.Go(func() error {
		all, err := c.skills.GetSkills(ctx)
		if err != nil {
			log.WithError(err).Warn("failed to load skill catalog")
			return nil
		}
		catalog = models.SkillNames(all)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if c.ctx.Err() != nil {
		return c.ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.project = project
	c.form = Fill(project)
	c.image = image
	c.projectSkills = distinct(selected)
	c.catalog = catalog
	return nil
}

// Project returns a copy of the loaded project
func (c *Controller) Project() (models.Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.project == nil {
		return models.Project{}, false
	}
	return *c.project, true
}

// Form returns the form filled from the loaded project
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Image returns the image URL of the loaded project
func (c *Controller) Image() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.image
}

// Skills returns the skills currently selected for the project
func (c *Controller) Skills() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.projectSkills...)
}

// Catalog returns the names of all known skills
func (c *Controller) Catalog() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.catalog...)
}

// AddListedSkill selects a skill from the catalog. It reports whether the skill was added.
func (c *Controller) AddListedSkill(name string) bool {
	return c.addSkill(name)
}

// AddOwnSkill selects a free-text skill. Blank input is ignored.
func (c *Controller) AddOwnSkill(name string) bool {
	return c.addSkill(strings.TrimSpace(name))
}

func (c *Controller) addSkill(name string) bool {
	if name == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.projectSkills {
		if s == name {
			return false
		}
	}
	c.projectSkills = append(c.projectSkills, name)
	return true
}

// DeleteSkill removes a skill from the selection
func (c *Controller) DeleteSkill(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.projectSkills[:0]
	removed := false
	for _, s := range c.projectSkills {
		if s == name {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	c.projectSkills = kept
	return removed
}

// Submit validates form, merges it into the loaded project and sends the project update
// and the skills update independently.
func (c *Controller) Submit(form Form) (*SubmitResult, error) {
	if err := validate(c.validate, form); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.project == nil {
		c.mu.Unlock()
		return nil, ErrNotLoaded
	}
	project := *c.project
	if project.Organization != nil {
		org := *project.Organization
		project.Organization = &org
	}
	form.apply(&project)
	skills := append([]string{}, c.projectSkills...)
	c.mu.Unlock()

	log := c.logger.WithField("project_id", project.ID)
	result := &SubmitResult{}

	var g errgroup.Group
	g.Go(func() error {
		updated, err := c.projects.UpdateProject(c.ctx, &project)
		if err != nil {
			log.WithError(err).Error("failed to update project")
			result.ProjectErr = fmt.Errorf("error updating project: %w", err)
			return nil
		}
		result.Project = updated
		log.Info("project data was successfully updated")
		return nil
	})
	g.Go(func() error {
		if err := c.skills.UpdateSkills(c.ctx, project.ID, skills); err != nil {
			log.WithError(err).Error("failed to update project skills")
			result.SkillsErr = fmt.Errorf("error updating skills: %w", err)
			return nil
		}
		log.Info("project skills were successfully updated")
		return nil
	})
	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
	if result.ProjectErr == nil {
		c.project = &project
	}
	return result, nil
}

// SaveImage stores a new image URL for the loaded project
func (c *Controller) SaveImage(imgURL string) error {
	imgURL = strings.TrimSpace(imgURL)
	if imgURL == "" {
		return errors.New("image URL is required")
	}

	c.mu.Lock()
	if c.project == nil {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	projectID := c.project.ID
	c.mu.Unlock()

	if err := c.projects.SaveProjectImage(c.ctx, projectID, imgURL); err != nil {
		c.logger.WithError(err).WithField("project_id", projectID).Error("failed to save project image")
		return fmt.Errorf("error saving image: %w", err)
	}

	c.mu.Lock()
	c.image = imgURL
	c.mu.Unlock()
	return nil
}

func distinct(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
