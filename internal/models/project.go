package models

import (
	"strings"
	"time"
)

// ProjectStatus is the one-letter lifecycle code the backend stores for a project
type ProjectStatus string

const (
	ProjectActive  ProjectStatus = "A" // Listed and accepting volunteers
	ProjectPending ProjectStatus = "P" // Awaiting approval
	ProjectDeleted ProjectStatus = "D" // Soft deleted
)

// ParseProjectStatus maps a status code to a ProjectStatus. Unknown codes are treated as pending.
func ParseProjectStatus(code string) ProjectStatus {
	switch ProjectStatus(strings.ToUpper(strings.TrimSpace(code))) {
	case ProjectActive:
		return ProjectActive
	case ProjectDeleted:
		return ProjectDeleted
	default:
		return ProjectPending
	}
}

// String returns the display name of the status
func (s ProjectStatus) String() string {
	switch s {
	case ProjectActive:
		return "Active"
	case ProjectDeleted:
		return "Deleted"
	case ProjectPending:
		return "Pending"
	case "":
		return "Unknown"
	default:
		return string(s)
	}
}

// Project represents a listing published by an organization seeking volunteers
type Project struct {
	ID             int64         `json:"id,omitempty" yaml:"id"`
	Name           string        `json:"name" yaml:"name"`
	OrganizationID int64         `json:"organizationId" yaml:"organization_id"`
	Description    string        `json:"description,omitempty" yaml:"description,omitempty"`
	Image          string        `json:"image,omitempty" yaml:"image,omitempty"`
	Address1       string        `json:"address1,omitempty" yaml:"address1,omitempty"`
	Address2       string        `json:"address2,omitempty" yaml:"address2,omitempty"`
	City           string        `json:"city,omitempty" yaml:"city,omitempty"`
	State          string        `json:"state,omitempty" yaml:"state,omitempty"`
	Zip            string        `json:"zip,omitempty" yaml:"zip,omitempty"`
	Country        string        `json:"country,omitempty" yaml:"country,omitempty"`
	RemoteFlag     string        `json:"remoteFlag,omitempty" yaml:"remote_flag,omitempty"`
	Status         ProjectStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Skills         []string      `json:"skills,omitempty" yaml:"skills,omitempty"`
	Organization   *Organization `json:"organization,omitempty" yaml:"organization,omitempty"`
	CreatedTime    *time.Time    `json:"createdTime,omitempty" yaml:"created_time,omitempty"`
	UpdatedTime    *time.Time    `json:"updatedTime,omitempty" yaml:"updated_time,omitempty"`
}

// IsRemote reports whether volunteers can work on the project remotely
func (p *Project) IsRemote() bool {
	return strings.EqualFold(p.RemoteFlag, "Y")
}

// Location joins the non-empty address parts into a single line
func (p *Project) Location() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{p.City, p.State, p.Zip, p.Country} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// SearchQuery holds the optional filters of a project search
type SearchQuery struct {
	Keyword string
	Skills  []string
	Status  ProjectStatus
	Remote  string

	// Page is 1-based; zero means the backend default
	Page int
	Size int
}

// ProjectPage is one page of a project search
type ProjectPage struct {
	Data       []Project `json:"data"`
	TotalItems int       `json:"totalItems"`
}
