package view

import (
	"context"
	"fmt"

	"c4sg/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// skillFetchLimit bounds the concurrent skill lookups for sibling projects
const skillFetchLimit = 4

// Composer assembles the project detail view
type Composer struct {
	projects ProjectService
	orgs     OrganizationService
	skills   SkillService
	logger   logrus.FieldLogger
}

// NewComposer creates a Composer
func NewComposer(projects ProjectService, orgs OrganizationService, skills SkillService, logger logrus.FieldLogger) *Composer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Composer{projects: projects, orgs: orgs, skills: skills, logger: logger}
}

// Compose fetches the project and then, concurrently, its organization, the organization's
// other active projects with their skills, the project's skills and the button state for
// the principal. Only a failed project fetch fails the call; any other failed fetch is
// logged and leaves its part of the view unset.
func (c *Composer) Compose(ctx context.Context, projectID int64, principal models.Principal) (*ProjectView, error) {
	log := c.logger.WithField("project_id", projectID)

	project, err := c.projects.GetProject(ctx, projectID)
	if err != nil {
		log.WithError(err).Error("failed to load project")
		return nil, fmt.Errorf("error getting project: %w", err)
	}

	v := &ProjectView{Project: project}

	// Each branch writes its own fields of v and never returns an error, so one failure
	// does not cancel the others.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.loadOrganization(gctx, v, log)
		return nil
	})
	g.Go(func() error {
		c.loadOrganizationProjects(gctx, v, log)
		return nil
	})
	g.Go(func() error {
		skills, err := c.skills.GetSkillsByProject(gctx, project.ID)
		if err != nil {
			log.WithError(err).Warn("failed to load project skills")
			return nil
		}
		project.Skills = skills
		return nil
	})
	g.Go(func() error {
		v.Buttons = c.buttons(gctx, project, principal, log)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return v, nil
}

func (c *Composer) loadOrganization(ctx context.Context, v *ProjectView, log logrus.FieldLogger) {
	org, err := c.orgs.GetOrganization(ctx, v.Project.OrganizationID)
	if err != nil {
		log.WithError(err).WithField("organization_id", v.Project.OrganizationID).Warn("failed to load organization")
		return
	}
	org.Normalize()
	v.Organization = org
	v.CategoryName = org.Category.Name()
}

func (c *Composer) loadOrganizationProjects(ctx context.Context, v *ProjectView, log logrus.FieldLogger) {
	projects, err := c.projects.GetProjectsByOrganization(ctx, v.Project.OrganizationID, models.ProjectActive)
	if err != nil {
		log.WithError(err).WithField("organization_id", v.Project.OrganizationID).Warn("failed to load organization projects")
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(skillFetchLimit)
	for i := range projects {
		sibling := &projects[i]
		g.Go(func() error {
			skills, err := c.skills.GetSkillsByProject(gctx, sibling.ID)
			if err != nil {
				log.WithError(err).WithField("sibling_id", sibling.ID).Warn("failed to load skills of organization project")
				return nil
			}
			sibling.Skills = skills
			return nil
		})
	}
	_ = g.Wait()

	v.OrganizationProjects = projects
}

// buttons decides which controls the principal sees
func (c *Composer) buttons(ctx context.Context, project *models.Project, principal models.Principal, log logrus.FieldLogger) Buttons {
	b := Buttons{Share: true}

	if !principal.Authenticated() {
		b.Apply = true
		b.Bookmark = true
		return b
	}

	switch principal.Role {
	case models.RoleAnonymous:
		b.Apply = true
		b.Bookmark = true

	case models.RoleVolunteer:
		b.Apply = true
		b.Bookmark = true

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			b.Applied = c.hasLink(gctx, principal.UserID, project.ID, models.LinkApplied, log)
			return nil
		})
		g.Go(func() error {
			b.Bookmarked = c.hasLink(gctx, principal.UserID, project.ID, models.LinkBookmarked, log)
			return nil
		})
		_ = g.Wait()

	case models.RoleOrganization:
		orgs, err := c.orgs.GetUserOrganizations(ctx, principal.UserID)
		if err != nil {
			log.WithError(err).WithField("user_id", principal.UserID).Warn("failed to load user organization")
			break
		}
		if len(orgs) > 0 && orgs[0].ID == project.OrganizationID {
			b.Edit = true
			b.Delete = true
		}

	case models.RoleAdmin:
		b.Edit = true
		b.Delete = true
	}

	return b
}

func (c *Composer) hasLink(ctx context.Context, userID, projectID int64, status models.LinkStatus, log logrus.FieldLogger) bool {
	projects, err := c.projects.GetProjectsByUser(ctx, userID, status)
	if err != nil {
		log.WithError(err).WithField("status", status.String()).Warn("failed to load user projects")
		return false
	}
	for _, p := range projects {
		if p.ID == projectID {
			return true
		}
	}
	return false
}
