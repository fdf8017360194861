package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"c4sg/internal/api"
	"c4sg/internal/models"
	"c4sg/internal/projectform"
	"c4sg/internal/projectlist"
	"c4sg/internal/util"
	"c4sg/internal/view"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Browse and manage projects",
	Long:  "List, search, show, create, edit and delete projects, and apply to or bookmark them",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Long:  "List every project, one page at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		e, err := loadEnv()
		if err != nil {
			return err
		}

		list := projectlist.NewController(commandContext(cmd), e.client, e.cfg.PageSize, logger)
		defer list.Close()

		if err := list.Load(); err != nil {
			p.Println("Error listing projects:", api.MessageOf(err))
			return nil
		}

		page, _ := cmd.Flags().GetInt("page")
		pager := list.SetPage(page)
		items := list.PageItems()
		if len(items) == 0 {
			p.Println("No projects found. Create one with 'c4sg project create'")
			return nil
		}

		p.Printf("Projects:\n\n")
		printProjects(p, items, pager.StartIndex)
		printPager(p, pager)
		return nil
	},
}

var projectSearchCmd = &cobra.Command{
	Use:   "search [keyword...]",
	Short: "Search projects",
	Long: `Search projects by keyword. --skill, --status and --remote narrow the search on the
server and page through its results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		e, err := loadEnv()
		if err != nil {
			return err
		}

		keyword := strings.Join(args, " ")
		flags := cmd.Flags()
		page, _ := flags.GetInt("page")
		skills, _ := flags.GetStringSlice("skill")
		statusFlag, _ := flags.GetString("status")
		remote, _ := flags.GetString("remote")

		status, err := projectStatusFlag(statusFlag)
		if err != nil {
			p.Println("Error:", err)
			return nil
		}

		if len(skills) == 0 && status == "" && remote == "" {
			list := projectlist.NewController(commandContext(cmd), e.client, e.cfg.PageSize, logger)
			defer list.Close()

			searched, err := list.Search(keyword)
			if err != nil {
				p.Println("Error searching projects:", api.MessageOf(err))
				return nil
			}
			if !searched {
				p.Println("Enter a keyword to search")
				return nil
			}

			pager := list.SetPage(page)
			items := list.PageItems()
			if len(items) == 0 {
				p.Printf("No projects match %q\n", strings.TrimSpace(keyword))
				return nil
			}
			printProjects(p, items, pager.StartIndex)
			printPager(p, pager)
			return nil
		}

		if page < 1 {
			page = 1
		}
		result, err := e.client.SearchProjects(commandContext(cmd), models.SearchQuery{
			Keyword: strings.TrimSpace(keyword),
			Skills:  skills,
			Status:  status,
			Remote:  strings.ToUpper(remote),
			Page:    page,
			Size:    e.cfg.PageSize,
		})
		if err != nil {
			p.Println("Error searching projects:", api.MessageOf(err))
			return nil
		}
		if len(result.Data) == 0 {
			p.Println("No projects match the search")
			return nil
		}

		pager := projectlist.Paginate(result.TotalItems, page, e.cfg.PageSize)
		printProjects(p, result.Data, (pager.CurrentPage-1)*pager.PageSize)
		printPager(p, pager)
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project_id]",
	Short: "Show project details",
	Long: `Show a project with its organization, the organization's other active projects and
the actions available to you`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		projectID, err := util.ParseID(args[0])
		if err != nil {
			p.Println("Error:", err)
			return nil
		}

		e, err := loadEnv()
		if err != nil {
			return err
		}

		composer := view.NewComposer(e.client, e.client, e.client, logger)
		v, err := composer.Compose(commandContext(cmd), projectID, e.session.Principal())
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				p.Printf("Project %d not found\n", projectID)
				return nil
			}
			p.Println("Error getting project:", api.MessageOf(err))
			return nil
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" || output == "text" {
			printProjectView(p, v)
			return nil
		}
		return writeStructured(p, output, v)
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long: `Create a project for an organization. Without --organization the first organization
of the logged in user is used. Fill in the details afterwards with 'c4sg project edit'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		e, err := loadEnv()
		if err != nil {
			return err
		}
		if !e.requireLogin(p) {
			return nil
		}
		ctx := commandContext(cmd)

		name, _ := cmd.Flags().GetString("name")
		if strings.TrimSpace(name) == "" {
			name = newPrompter(cmd).Ask("Project name", "")
		}

		orgID, _ := cmd.Flags().GetInt64("organization")
		if orgID == 0 {
			orgs, err := e.client.GetUserOrganizations(ctx, e.session.Principal().UserID)
			if err != nil {
				p.Println("Error fetching organizations:", api.MessageOf(err))
				return nil
			}
			if len(orgs) == 0 {
				p.Println("Error: --organization is required")
				return nil
			}
			orgID = orgs[0].ID
		}

		list := projectlist.NewController(ctx, e.client, e.cfg.PageSize, logger)
		defer list.Close()

		project, err := list.Add(name, orgID)
		if err != nil && project == nil {
			p.Println("Error creating project:", api.MessageOf(err))
			return nil
		}
		if project == nil {
			p.Println("Error: Project name is required")
			return nil
		}

		p.Success("Project created successfully!")
		p.Printf("ID: %d\n", project.ID)
		p.Printf("Name: %s\n", project.Name)
		p.Printf("Organization ID: %d\n", project.OrganizationID)
		p.Printf("Add details with 'c4sg project edit %d'\n", project.ID)
		return nil
	},
}

// editFields maps the edit command's flags to form fields
var editFields = []struct {
	flag, field, label string
}{
	{"name", "projectName", "Name"},
	{"organization-name", "organizationName", "Organization name"},
	{"description", "projectDescription", "Description"},
	{"remote", "remoteFlag", "Remote (Y/N)"},
	{"address1", "address1", "Address line 1"},
	{"address2", "address2", "Address line 2"},
	{"city", "city", "City"},
	{"state", "state", "State"},
	{"zip", "zip", "Zip"},
	{"country", "country", "Country"},
}

var projectEditCmd = &cobra.Command{
	Use:   "edit [project_id]",
	Short: "Edit a project",
	Long: `Edit a project's details and skills. Without field flags every field is prompted
for, showing its current value. The project and its skills are saved separately, so one
can succeed while the other fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		projectID, err := util.ParseID(args[0])
		if err != nil {
			p.Println("Error:", err)
			return nil
		}

		e, err := loadEnv()
		if err != nil {
			return err
		}
		if !e.requireLogin(p) {
			return nil
		}

		ctrl := projectform.NewController(commandContext(cmd), e.client, e.client, logger)
		defer ctrl.Close()

		if err := ctrl.Load(projectID); err != nil {
			p.Println("Error getting project:", api.MessageOf(err))
			return nil
		}

		form := ctrl.Form()
		flags := cmd.Flags()
		changed := false
		for _, f := range editFields {
			if flags.Changed(f.flag) {
				value, _ := flags.GetString(f.flag)
				_ = form.Set(f.field, value)
				changed = true
			}
		}
		if !changed {
			pr := newPrompter(cmd)
			for _, f := range editFields {
				current, _ := form.Get(f.field)
				_ = form.Set(f.field, pr.Ask(f.label, current))
			}
		}

		catalog := ctrl.Catalog()
		addSkills, _ := flags.GetStringSlice("add-skill")
		for _, skill := range addSkills {
			if contains(catalog, skill) {
				ctrl.AddListedSkill(skill)
			} else {
				ctrl.AddOwnSkill(skill)
			}
		}
		removeSkills, _ := flags.GetStringSlice("remove-skill")
		for _, skill := range removeSkills {
			if !ctrl.DeleteSkill(strings.TrimSpace(skill)) {
				p.Warn("Skill %q is not on the project", skill)
			}
		}

		result, err := ctrl.Submit(form)
		if err != nil {
			p.Println("Error:", err)
			return nil
		}

		if result.ProjectErr != nil {
			p.Fail("Error updating project: %s", api.MessageOf(result.ProjectErr))
		} else {
			p.Success("Project data was successfully updated")
		}
		if result.SkillsErr != nil {
			p.Fail("Error updating skills: %s", api.MessageOf(result.SkillsErr))
		} else {
			p.Success("Project skills were successfully updated")
			if skills := ctrl.Skills(); len(skills) > 0 {
				p.Printf("Skills: %s\n", strings.Join(skills, ", "))
			}
		}

		if image, _ := flags.GetString("image"); image != "" {
			if err := ctrl.SaveImage(image); err != nil {
				p.Fail("Error saving image: %s", api.MessageOf(err))
			} else {
				p.Success("Project image saved")
			}
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project_id]",
	Short: "Delete project",
	Long:  "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		projectID, err := util.ParseID(args[0])
		if err != nil {
			p.Println("Error:", err)
			return nil
		}

		e, err := loadEnv()
		if err != nil {
			return err
		}
		if !e.requireLogin(p) {
			return nil
		}
		ctx := commandContext(cmd)

		project, err := e.client.GetProject(ctx, projectID)
		if err != nil {
			p.Println("Error getting project:", api.MessageOf(err))
			return nil
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			question := fmt.Sprintf("Are you sure you want to delete project '%s'?", project.Name)
			if !newPrompter(cmd).Confirm(question) {
				p.Println("Project deletion cancelled.")
				return nil
			}
		}

		actions := view.NewActions(e.client, e.session, nil, logger)
		outcome := actions.Delete(ctx, &view.ProjectView{Project: project})
		if outcome.Navigate == view.ListRoute {
			p.Success("%s", outcome.Notification.Message)
		} else {
			p.Fail("%s", outcome.Notification.Message)
		}
		return nil
	},
}

var projectApplyCmd = &cobra.Command{
	Use:   "apply [project_id]",
	Short: "Apply for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLink(cmd, args[0], (*view.Actions).Apply)
	},
}

var projectBookmarkCmd = &cobra.Command{
	Use:   "bookmark [project_id]",
	Short: "Bookmark a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLink(cmd, args[0], (*view.Actions).Bookmark)
	},
}

type linkAction func(*view.Actions, context.Context, *view.ProjectView) (view.Outcome, error)

// runLink applies or bookmarks as the session user. Anonymous users are pointed at login
// and brought back to the project afterwards.
func runLink(cmd *cobra.Command, arg string, action linkAction) error {
	p := newPrinter(cmd)
	projectID, err := util.ParseID(arg)
	if err != nil {
		p.Println("Error:", err)
		return nil
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	actions := view.NewActions(e.client, e.session, nil, logger)
	v := &view.ProjectView{Project: &models.Project{ID: projectID}}
	outcome, err := action(actions, commandContext(cmd), v)
	if err != nil {
		return err
	}
	if outcome.LoginRequired {
		p.Println("You are not logged in. Please log in first with 'c4sg login'; you will be pointed back to this project.")
		return nil
	}

	if v.Buttons.Applied || v.Buttons.Bookmarked {
		p.Success("%s", outcome.Notification.Message)
	} else {
		p.Fail("%s", outcome.Notification.Message)
	}
	return nil
}

var projectImageCmd = &cobra.Command{
	Use:   "image [project_id] [url]",
	Short: "Show or set the project image",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		projectID, err := util.ParseID(args[0])
		if err != nil {
			p.Println("Error:", err)
			return nil
		}

		e, err := loadEnv()
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)

		if len(args) == 1 {
			url, err := e.client.GetProjectImage(ctx, projectID)
			if err != nil {
				p.Println("Error getting image:", api.MessageOf(err))
				return nil
			}
			if url == "" {
				p.Println("No image set")
				return nil
			}
			p.Println(url)
			return nil
		}

		if !e.requireLogin(p) {
			return nil
		}
		if err := e.client.SaveProjectImage(ctx, projectID, args[1]); err != nil {
			p.Println("Error saving image:", api.MessageOf(err))
			return nil
		}
		p.Success("Project image saved")
		return nil
	},
}

var projectMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the projects you applied to or bookmarked",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		statusFlag, _ := cmd.Flags().GetString("status")
		status, err := linkStatusFlag(statusFlag)
		if err != nil {
			p.Println("Error:", err)
			return nil
		}

		e, err := loadEnv()
		if err != nil {
			return err
		}
		if !e.requireLogin(p) {
			return nil
		}

		list := projectlist.NewController(commandContext(cmd), e.client, e.cfg.PageSize, logger)
		defer list.Close()

		if err := list.ByUser(e.session.Principal().UserID, status); err != nil {
			p.Println("Error listing projects:", api.MessageOf(err))
			return nil
		}

		projects := list.Projects()
		if len(projects) == 0 {
			if status == models.LinkApplied {
				p.Println("You have not applied to any projects yet")
			} else {
				p.Println("You have not bookmarked any projects yet")
			}
			return nil
		}
		printProjects(p, projects, 0)
		return nil
	},
}

var projectOrgCmd = &cobra.Command{
	Use:   "org [organization_id]",
	Short: "List the projects of an organization",
	Long:  "List an organization's projects. Without an id your own organization is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		statusFlag, _ := cmd.Flags().GetString("status")
		status, err := projectStatusFlag(statusFlag)
		if err != nil {
			p.Println("Error:", err)
			return nil
		}

		e, err := loadEnv()
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)

		var orgID int64
		if len(args) == 1 {
			if orgID, err = util.ParseID(args[0]); err != nil {
				p.Println("Error:", err)
				return nil
			}
		} else {
			if !e.requireLogin(p) {
				return nil
			}
			orgs, err := e.client.GetUserOrganizations(ctx, e.session.Principal().UserID)
			if err != nil {
				p.Println("Error fetching organizations:", api.MessageOf(err))
				return nil
			}
			if len(orgs) == 0 {
				p.Println("You do not belong to an organization")
				return nil
			}
			orgID = orgs[0].ID
		}

		list := projectlist.NewController(ctx, e.client, e.cfg.PageSize, logger)
		defer list.Close()

		if err := list.ByOrganization(orgID, status); err != nil {
			p.Println("Error listing projects:", api.MessageOf(err))
			return nil
		}
		projects := list.Projects()
		if len(projects) == 0 {
			p.Println("No projects found")
			return nil
		}
		printProjects(p, projects, 0)
		return nil
	},
}

func projectStatusFlag(s string) (models.ProjectStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	case "a", "active":
		return models.ProjectActive, nil
	case "p", "pending":
		return models.ProjectPending, nil
	case "d", "deleted":
		return models.ProjectDeleted, nil
	}
	return "", fmt.Errorf("unknown project status %q", s)
}

func linkStatusFlag(s string) (models.LinkStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a", "applied":
		return models.LinkApplied, nil
	case "b", "bookmarked":
		return models.LinkBookmarked, nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrInvalidLinkStatus, s)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectSearchCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectApplyCmd)
	projectCmd.AddCommand(projectBookmarkCmd)
	projectCmd.AddCommand(projectImageCmd)
	projectCmd.AddCommand(projectMineCmd)
	projectCmd.AddCommand(projectOrgCmd)

	projectListCmd.Flags().Int("page", 1, "Page to show")

	projectSearchCmd.Flags().Int("page", 1, "Page to show")
	projectSearchCmd.Flags().StringSlice("skill", nil, "Only projects needing this skill (repeatable)")
	projectSearchCmd.Flags().String("status", "", "Only projects with this status (active, pending, deleted)")
	projectSearchCmd.Flags().String("remote", "", "Only remote (Y) or on-site (N) projects")

	projectShowCmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")

	projectCreateCmd.Flags().String("name", "", "Project name")
	projectCreateCmd.Flags().Int64("organization", 0, "Organization id")

	for _, f := range editFields {
		projectEditCmd.Flags().String(f.flag, "", "Set "+strings.ToLower(f.label))
	}
	projectEditCmd.Flags().StringSlice("add-skill", nil, "Add a skill (repeatable)")
	projectEditCmd.Flags().StringSlice("remove-skill", nil, "Remove a skill (repeatable)")
	projectEditCmd.Flags().String("image", "", "Set the project image URL")

	projectDeleteCmd.Flags().Bool("force", false, "Force deletion without confirmation")

	projectMineCmd.Flags().String("status", "applied", "applied or bookmarked")
	projectOrgCmd.Flags().String("status", "all", "Project status: active, pending, deleted or all")
}
