package models

import "strings"

// Category is the one-letter organization category code
type Category string

const (
	CategoryNonprofit  Category = "N"
	CategoryOpenSource Category = "O"
	CategoryMisc       Category = "M"
)

// Name returns the display name of the category, or an empty string for unknown codes
func (c Category) Name() string {
	switch c {
	case CategoryNonprofit:
		return "Nonprofit"
	case CategoryOpenSource:
		return "Open Source"
	case CategoryMisc:
		return "Misc"
	}
	return ""
}

// DescriptionLimit is the number of characters of an organization description shown on a project page
const DescriptionLimit = 100

// Organization represents a nonprofit or open source group publishing projects
type Organization struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	WebsiteURL  string   `json:"websiteUrl,omitempty" yaml:"website_url,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Users       []User   `json:"users,omitempty" yaml:"users,omitempty"`
}

// Normalize prepares the organization for display: the website URL gets an "http://"
// prefix when it has no scheme and the description is cut to DescriptionLimit characters.
func (o *Organization) Normalize() {
	o.WebsiteURL = NormalizeWebsiteURL(o.WebsiteURL)
	o.Description = TruncateDescription(o.Description, DescriptionLimit)
}

// NormalizeWebsiteURL prefixes url with "http://" unless it already starts with "http"
func NormalizeWebsiteURL(url string) string {
	if url == "" || strings.HasPrefix(url, "http") {
		return url
	}
	return "http://" + url
}

// TruncateDescription keeps the first limit characters of s and appends "..." when s is longer
func TruncateDescription(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
