package models

import (
	"fmt"
	"strings"
)

// LinkStatus is the status of a user-project link record
type LinkStatus string

const (
	LinkApplied    LinkStatus = "A"
	LinkBookmarked LinkStatus = "B"
)

// ParseLinkStatus validates a link status code
func ParseLinkStatus(code string) (LinkStatus, error) {
	switch LinkStatus(strings.ToUpper(strings.TrimSpace(code))) {
	case LinkApplied:
		return LinkApplied, nil
	case LinkBookmarked:
		return LinkBookmarked, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLinkStatus, code)
}

// String returns the display name of the status
func (s LinkStatus) String() string {
	switch s {
	case LinkApplied:
		return "Applied"
	case LinkBookmarked:
		return "Bookmarked"
	}
	return string(s)
}

// UserProjectLink associates a user with a project
type UserProjectLink struct {
	ProjectID int64      `json:"projectId"`
	UserID    int64      `json:"userId"`
	Status    LinkStatus `json:"status"`
}
