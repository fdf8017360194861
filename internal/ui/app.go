package ui

import (
	"context"
	"fmt"
	"time"

	"c4sg/internal/projectlist"
	"c4sg/internal/ui/components"
	"c4sg/internal/view"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// Deps are the controllers the UI drives
type Deps struct {
	List     *projectlist.Controller
	Composer *view.Composer
	Actions  *view.Actions
	Session  view.Session
}

// Model represents the UI model
type Model struct {
	deps Deps
	ctx  context.Context

	Screen        screen
	List          components.ProjectListModel
	Viewport      viewport.Model
	Spinner       spinner.Model
	Search        textinput.Model
	Searching     bool
	IsLoading     bool
	StatusMessage string
	ErrorMessage  string
	Toast         string
	Width         int
	Height        int
	Ready         bool

	// Detail is the project view of the detail screen
	Detail *view.ProjectView

	// detailID is the project the detail screen is showing or loading
	detailID     int64
	detailCancel context.CancelFunc

	toastSeq int
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	search := textinput.New()
	search.Placeholder = "keyword"
	search.Prompt = "Search: "
	search.CharLimit = 100

	return Model{
		deps:          deps,
		ctx:           ctx,
		Screen:        screenList,
		List:          components.NewProjectListModel(80, 20),
		Spinner:       s,
		Search:        search,
		IsLoading:     true,
		StatusMessage: "Loading projects...",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadProjects(m.deps.List))
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.Searching {
			return m.updateSearch(msg)
		}
		if m.Screen == screenDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.SetSize(msg.Width, msg.Height-5)

		if !m.Ready {
			m.Viewport = viewport.New(msg.Width, msg.Height-5)
			m.Viewport.YPosition = 2
			m.Ready = true
		} else {
			m.Viewport.Width = msg.Width
			m.Viewport.Height = msg.Height - 5
		}
		if m.Detail != nil {
			m.Viewport.SetContent(renderProjectView(m.Detail, m.Width))
		}
		return m, nil

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case projectsLoadedMsg:
		m.IsLoading = false
		m.ErrorMessage = ""
		if msg.skipped {
			m.StatusMessage = "Enter a keyword to search"
			return m, nil
		}
		m.List.SetProjects(m.deps.List.PageItems())
		m.StatusMessage = m.pageStatus()
		return m, nil

	case projectViewMsg:
		if m.Screen != screenDetail || msg.projectID != m.detailID {
			return m, nil
		}
		m.IsLoading = false
		if msg.err != nil {
			m.ErrorMessage = fmt.Sprintf("Error loading project: %v", msg.err)
			m.StatusMessage = "Error"
			return m, nil
		}
		m.Detail = msg.view
		m.StatusMessage = msg.view.Project.Name
		m.Viewport.SetContent(renderProjectView(msg.view, m.Width))
		m.Viewport.GotoTop()
		return m, nil

	case actionDoneMsg:
		return m.handleOutcome(msg)

	case toastExpiredMsg:
		if int(msg) == m.toastSeq {
			m.Toast = ""
		}
		return m, nil

	case errorMsg:
		m.IsLoading = false
		m.ErrorMessage = string(msg)
		m.StatusMessage = "Error"
		return m, nil
	}

	if m.Ready && m.Screen == screenDetail {
		var viewportCmd tea.Cmd
		m.Viewport, viewportCmd = m.Viewport.Update(msg)
		cmds = append(cmds, viewportCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "r":
		m.IsLoading = true
		m.StatusMessage = "Refreshing projects..."
		return m, loadProjects(m.deps.List)
	case "/":
		m.Searching = true
		m.Search.SetValue("")
		return m, m.Search.Focus()
	case "]":
		return m.setPage(m.deps.List.Pager().CurrentPage + 1), nil
	case "[":
		return m.setPage(m.deps.List.Pager().CurrentPage - 1), nil
	case "enter":
		if m.List.Selected == nil {
			return m, nil
		}
		return m.openDetail(m.List.Selected.ID)
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Searching = false
		m.Search.Blur()
		return m, nil
	case "enter":
		m.Searching = false
		m.Search.Blur()
		keyword := m.Search.Value()
		m.IsLoading = true
		m.StatusMessage = "Searching..."
		return m, searchProjects(m.deps.List, keyword)
	}

	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "backspace":
		return m.closeDetail(), nil
	}

	if m.Detail == nil {
		return m, nil
	}
	buttons := m.Detail.Buttons

	switch msg.String() {
	case "a":
		if buttons.Apply && !buttons.Applied {
			return m, applyProject(m.ctx, m.deps.Actions, m.Detail)
		}
	case "b":
		if buttons.Bookmark && !buttons.Bookmarked {
			return m, bookmarkProject(m.ctx, m.deps.Actions, m.Detail)
		}
	case "e":
		if buttons.Edit {
			outcome := m.deps.Actions.Edit(m.Detail)
			return m.showToast(fmt.Sprintf("Edit with: c4sg project edit %d (%s)", m.Detail.Project.ID, outcome.Navigate), view.ToastDuration)
		}
	case "x":
		if buttons.Delete {
			m.IsLoading = true
			m.StatusMessage = "Deleting project..."
			return m, deleteProject(m.ctx, m.deps.Actions, m.Detail)
		}
	case "s":
		if buttons.Share {
			return m.showToast("Share: "+view.Route(m.Detail.Project.ID), view.ToastDuration)
		}
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) openDetail(projectID int64) (tea.Model, tea.Cmd) {
	if m.detailCancel != nil {
		m.detailCancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)

	m.Screen = screenDetail
	m.Detail = nil
	m.detailID = projectID
	m.detailCancel = cancel
	m.ErrorMessage = ""
	m.IsLoading = true
	m.StatusMessage = fmt.Sprintf("Loading project %d...", projectID)
	m.Viewport.SetContent("")

	return m, loadProjectView(ctx, m.deps.Composer, projectID, m.deps.Session.Principal())
}

// closeDetail leaves the detail screen; a view still loading is discarded
func (m Model) closeDetail() Model {
	if m.detailCancel != nil {
		m.detailCancel()
		m.detailCancel = nil
	}
	m.Screen = screenList
	m.Detail = nil
	m.detailID = 0
	m.IsLoading = false
	m.ErrorMessage = ""
	m.StatusMessage = m.pageStatus()
	return m
}

func (m Model) handleOutcome(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	m.IsLoading = false
	if msg.err != nil {
		m.ErrorMessage = msg.err.Error()
		return m, nil
	}

	outcome := msg.outcome
	if m.Screen == screenDetail && msg.view != nil && msg.view.Project.ID == m.detailID {
		m.Detail = msg.view
		m.Viewport.SetContent(renderProjectView(msg.view, m.Width))
	}

	var cmds []tea.Cmd
	if outcome.LoginRequired {
		var cmd tea.Cmd
		m, cmd = m.withToast("Login required: run 'c4sg login' and you will be sent back to this project", view.ToastDuration)
		cmds = append(cmds, cmd)
	}
	if outcome.Notification != nil {
		var cmd tea.Cmd
		m, cmd = m.withToast(outcome.Notification.Message, outcome.Notification.Duration)
		cmds = append(cmds, cmd)
	}
	if outcome.Navigate == view.ListRoute {
		m = m.closeDetail()
		m.IsLoading = true
		cmds = append(cmds, loadProjects(m.deps.List))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) showToast(message string, d time.Duration) (tea.Model, tea.Cmd) {
	return m.withToast(message, d)
}

func (m Model) withToast(message string, d time.Duration) (Model, tea.Cmd) {
	m.toastSeq++
	m.Toast = message
	return m, expireToast(m.toastSeq, d)
}

func (m Model) setPage(page int) Model {
	p := m.deps.List.SetPage(page)
	m.List.SetProjects(m.deps.List.PageItems())
	m.StatusMessage = fmt.Sprintf("Page %d of %d", p.CurrentPage, p.TotalPages)
	return m
}

func (m Model) pageStatus() string {
	p := m.deps.List.Pager()
	if p.TotalItems == 0 {
		return "No projects found"
	}
	return fmt.Sprintf("%d projects - page %d of %d", p.TotalItems, p.CurrentPage, p.TotalPages)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.detailCancel != nil {
		m.detailCancel()
	}
	m.deps.List.Close()
	return m, tea.Quit
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	var status string
	if m.IsLoading {
		status = fmt.Sprintf("%s %s", m.Spinner.View(), m.StatusMessage)
	} else {
		status = m.StatusMessage
	}

	titleBar := titleStyle.Render("C4SG - Projects")
	statusBar := mutedStyle.Render(status)

	var body, help string
	switch m.Screen {
	case screenDetail:
		body = m.Viewport.View()
		help = "esc back - a apply - b bookmark - s share - e edit - x delete - q quit"
	default:
		body = m.List.View()
		help = "enter open - / search - [ ] page - r refresh - q quit"
	}

	searchView := ""
	if m.Searching {
		searchView = lipgloss.NewStyle().Padding(0, 1).Render(m.Search.View())
	}

	toastView := ""
	if m.Toast != "" {
		toastView = toastStyle.Render(m.Toast)
	}

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = errorStyle.Render(m.ErrorMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		statusBar,
		searchView,
		body,
		toastView,
		errorView,
		mutedStyle.Render(help),
	)
}
