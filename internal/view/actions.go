package view

import (
	"context"
	"fmt"

	"c4sg/internal/api"
	"c4sg/internal/models"

	"github.com/sirupsen/logrus"
)

// Actions runs the user actions of the project detail page
type Actions struct {
	projects ProjectService
	session  Session
	login    LoginFunc
	logger   logrus.FieldLogger
}

// NewActions creates Actions. login is invoked when an anonymous user tries to apply or bookmark.
func NewActions(projects ProjectService, session Session, login LoginFunc, logger logrus.FieldLogger) *Actions {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Actions{projects: projects, session: session, login: login, logger: logger}
}

// Apply links the current user to the project as an applicant
func (a *Actions) Apply(ctx context.Context, v *ProjectView) (Outcome, error) {
	return a.link(ctx, v, models.LinkApplied)
}

// Bookmark links the current user to the project as a bookmark
func (a *Actions) Bookmark(ctx context.Context, v *ProjectView) (Outcome, error) {
	return a.link(ctx, v, models.LinkBookmarked)
}

func (a *Actions) link(ctx context.Context, v *ProjectView, status models.LinkStatus) (Outcome, error) {
	principal := a.session.Principal()
	if !principal.Authenticated() {
		if err := a.session.RememberRoute(Route(v.Project.ID)); err != nil {
			return Outcome{}, fmt.Errorf("error saving redirect: %w", err)
		}
		if a.login != nil {
			if err := a.login(ctx); err != nil {
				return Outcome{LoginRequired: true}, fmt.Errorf("login failed: %w", err)
			}
		}
		return Outcome{LoginRequired: true}, nil
	}

	err := a.projects.LinkUserProject(ctx, v.Project.ID, principal.UserID, status)
	if err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"project_id": v.Project.ID,
			"status":     status.String(),
		}).Info("link request rejected")
		return Outcome{Notification: toast(api.MessageOf(err))}, nil
	}

	switch status {
	case models.LinkApplied:
		v.Buttons.Applied = true
		return Outcome{Notification: toast("Applied for the project")}, nil
	case models.LinkBookmarked:
		v.Buttons.Bookmarked = true
		return Outcome{Notification: toast("Bookmark added for the project")}, nil
	}
	return Outcome{}, nil
}

// Delete removes the project and sends the user back to the list
func (a *Actions) Delete(ctx context.Context, v *ProjectView) Outcome {
	if err := a.projects.DeleteProject(ctx, v.Project.ID); err != nil {
		a.logger.WithError(err).WithField("project_id", v.Project.ID).Error("failed to delete project")
		return Outcome{Notification: toast("Error while deleting a project")}
	}
	return Outcome{
		Notification: toast("Project deleted successfully"),
		Navigate:     ListRoute,
	}
}

// Edit returns the outcome of the edit control
func (a *Actions) Edit(v *ProjectView) Outcome {
	return Outcome{Navigate: EditRoute(v.Project.ID)}
}
