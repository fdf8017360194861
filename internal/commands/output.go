package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"c4sg/internal/models"
	"c4sg/internal/projectlist"
	"c4sg/internal/util"
	"c4sg/internal/view"

	"gopkg.in/yaml.v3"
)

// writeStructured prints v as json or yaml
func writeStructured(p printer, format string, v interface{}) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding json: %w", err)
		}
		p.Println(string(data))
	case "yaml":
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

func printProjects(p printer, projects []models.Project, offset int) {
	for i, project := range projects {
		p.Printf("%d. %s (ID: %d)\n", offset+i+1, project.Name, project.ID)
		line := "   Status: " + project.Status.String()
		if project.IsRemote() {
			line += " - Remote"
		}
		p.Println(line)
		if loc := project.Location(); loc != "" {
			p.Printf("   Location: %s\n", loc)
		}
		if project.Description != "" {
			p.Printf("   Description: %s\n", util.Truncate(project.Description, 80))
		}
		if len(project.Skills) > 0 {
			p.Printf("   Skills: %s\n", strings.Join(project.Skills, ", "))
		}
		p.Println()
	}
}

func printPager(p printer, pager projectlist.Pager) {
	if pager.TotalPages <= 1 {
		p.Println(util.Plural(pager.TotalItems, "project"))
		return
	}
	pages := make([]string, len(pager.Pages))
	for i, n := range pager.Pages {
		if n == pager.CurrentPage {
			pages[i] = fmt.Sprintf("[%d]", n)
		} else {
			pages[i] = fmt.Sprint(n)
		}
	}
	p.Printf("%s - page %d of %d: %s\n", util.Plural(pager.TotalItems, "project"),
		pager.CurrentPage, pager.TotalPages, strings.Join(pages, " "))
}

func printProjectView(p printer, v *view.ProjectView) {
	project := v.Project

	p.Printf("Project Details:\n\n")
	p.Printf("ID: %d\n", project.ID)
	p.Printf("Name: %s\n", project.Name)
	p.Printf("Status: %s\n", project.Status)
	if project.Description != "" {
		p.Printf("Description: %s\n", project.Description)
	}
	if project.IsRemote() {
		p.Println("Remote: yes")
	}
	if loc := project.Location(); loc != "" {
		p.Printf("Location: %s\n", loc)
	}
	if len(project.Skills) > 0 {
		p.Printf("Skills: %s\n", strings.Join(project.Skills, ", "))
	}

	if org := v.Organization; org != nil {
		p.Println()
		if v.CategoryName != "" {
			p.Printf("Organization: %s (%s)\n", org.Name, v.CategoryName)
		} else {
			p.Printf("Organization: %s\n", org.Name)
		}
		if org.WebsiteURL != "" {
			p.Printf("Website: %s\n", org.WebsiteURL)
		}
		if org.Description != "" {
			p.Printf("About: %s\n", org.Description)
		}
	}

	if len(v.OrganizationProjects) > 0 {
		p.Println("\nMore projects from this organization:")
		for _, sibling := range v.OrganizationProjects {
			line := fmt.Sprintf("- #%d %s", sibling.ID, sibling.Name)
			if len(sibling.Skills) > 0 {
				line += " (" + strings.Join(sibling.Skills, ", ") + ")"
			}
			p.Println(line)
		}
	}

	p.Println()
	p.Printf("Actions: %s\n", strings.Join(actionHints(project.ID, v.Buttons), ", "))
}

func actionHints(id int64, b view.Buttons) []string {
	var hints []string
	if b.Share {
		hints = append(hints, "share "+view.Route(id))
	}
	if b.Apply {
		if b.Applied {
			hints = append(hints, "applied")
		} else {
			hints = append(hints, fmt.Sprintf("c4sg project apply %d", id))
		}
	}
	if b.Bookmark {
		if b.Bookmarked {
			hints = append(hints, "bookmarked")
		} else {
			hints = append(hints, fmt.Sprintf("c4sg project bookmark %d", id))
		}
	}
	if b.Edit {
		hints = append(hints, fmt.Sprintf("c4sg project edit %d", id))
	}
	if b.Delete {
		hints = append(hints, fmt.Sprintf("c4sg project delete %d", id))
	}
	return hints
}
