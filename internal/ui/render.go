package ui

import (
	"fmt"
	"strings"

	"c4sg/internal/view"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("10")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	skillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderProjectView renders the detail page of a project
func renderProjectView(v *view.ProjectView, width int) string {
	if v == nil || v.Project == nil {
		return "Project not available."
	}
	p := v.Project

	var sections []string

	var header strings.Builder
	header.WriteString(headingStyle.Render(p.Name) + "\n")
	header.WriteString(field("Status", p.Status.String()))
	if p.IsRemote() {
		header.WriteString(field("Remote", "yes"))
	}
	if loc := p.Location(); loc != "" {
		header.WriteString(field("Location", loc))
	}
	if p.Description != "" {
		header.WriteString("\n" + wrap(p.Description, width) + "\n")
	}
	if len(p.Skills) > 0 {
		header.WriteString(field("Skills", skillStyle.Render(strings.Join(p.Skills, ", "))))
	}
	sections = append(sections, header.String())

	if org := v.Organization; org != nil {
		var content strings.Builder
		content.WriteString(headingStyle.Render("Organization") + "\n")
		content.WriteString(field("Name", org.Name))
		if v.CategoryName != "" {
			content.WriteString(field("Category", v.CategoryName))
		}
		if org.WebsiteURL != "" {
			content.WriteString(field("Website", org.WebsiteURL))
		}
		if org.Description != "" {
			content.WriteString(wrap(org.Description, width) + "\n")
		}
		sections = append(sections, content.String())
	}

	if len(v.OrganizationProjects) > 0 {
		var content strings.Builder
		content.WriteString(headingStyle.Render("More projects from this organization") + "\n")
		for _, sibling := range v.OrganizationProjects {
			line := fmt.Sprintf("  #%d %s", sibling.ID, sibling.Name)
			if len(sibling.Skills) > 0 {
				line += " " + skillStyle.Render("("+strings.Join(sibling.Skills, ", ")+")")
			}
			content.WriteString(line + "\n")
		}
		sections = append(sections, content.String())
	}

	sections = append(sections, renderButtons(v.Buttons))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderButtons(b view.Buttons) string {
	var controls []string
	if b.Share {
		controls = append(controls, onStyle.Render("[s] Share"))
	}
	if b.Apply {
		controls = append(controls, toggle("[a] Apply", "Applied", b.Applied))
	}
	if b.Bookmark {
		controls = append(controls, toggle("[b] Bookmark", "Bookmarked", b.Bookmarked))
	}
	if b.Edit {
		controls = append(controls, onStyle.Render("[e] Edit"))
	}
	if b.Delete {
		controls = append(controls, onStyle.Render("[x] Delete"))
	}
	return strings.Join(controls, "  ")
}

func toggle(label, done string, disabled bool) string {
	if disabled {
		return offStyle.Render(done)
	}
	return onStyle.Render(label)
}

func field(label, value string) string {
	return fmt.Sprintf("%s %s\n", labelStyle.Render(label+":"), value)
}

func wrap(text string, width int) string {
	if width <= 4 {
		return text
	}
	return lipgloss.NewStyle().Width(width - 2).Render(text)
}
