package ui

import (
	"context"
	"fmt"
	"time"

	"c4sg/internal/models"
	"c4sg/internal/projectlist"
	"c4sg/internal/view"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages
type projectsLoadedMsg struct {
	// skipped is set when a blank search left the list as it was
	skipped bool
}

type projectViewMsg struct {
	projectID int64
	view      *view.ProjectView
	err       error
}

type actionDoneMsg struct {
	view    *view.ProjectView
	outcome view.Outcome
	err     error
}

type toastExpiredMsg int

type errorMsg string

// Commands
func loadProjects(list *projectlist.Controller) tea.Cmd {
	return func() tea.Msg {
		if err := list.Load(); err != nil {
			return errorMsg(fmt.Sprintf("Error loading projects: %v", err))
		}
		return projectsLoadedMsg{}
	}
}

func searchProjects(list *projectlist.Controller, keyword string) tea.Cmd {
	return func() tea.Msg {
		searched, err := list.Search(keyword)
		if err != nil {
			return errorMsg(fmt.Sprintf("Error searching projects: %v", err))
		}
		return projectsLoadedMsg{skipped: !searched}
	}
}

func loadProjectView(ctx context.Context, composer *view.Composer, projectID int64, principal models.Principal) tea.Cmd {
	return func() tea.Msg {
		v, err := composer.Compose(ctx, projectID, principal)
		return projectViewMsg{projectID: projectID, view: v, err: err}
	}
}

// The action commands work on a copy of the view so the model is never shared with
// the command goroutine.
func applyProject(ctx context.Context, actions *view.Actions, v *view.ProjectView) tea.Cmd {
	cp := *v
	return func() tea.Msg {
		outcome, err := actions.Apply(ctx, &cp)
		return actionDoneMsg{view: &cp, outcome: outcome, err: err}
	}
}

func bookmarkProject(ctx context.Context, actions *view.Actions, v *view.ProjectView) tea.Cmd {
	cp := *v
	return func() tea.Msg {
		outcome, err := actions.Bookmark(ctx, &cp)
		return actionDoneMsg{view: &cp, outcome: outcome, err: err}
	}
}

func deleteProject(ctx context.Context, actions *view.Actions, v *view.ProjectView) tea.Cmd {
	cp := *v
	return func() tea.Msg {
		return actionDoneMsg{view: &cp, outcome: actions.Delete(ctx, &cp)}
	}
}

func expireToast(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg(seq)
	})
}
