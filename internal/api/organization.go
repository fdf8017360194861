package api

import (
	"context"
	"fmt"
	"net/http"

	"c4sg/internal/models"
)

const organizationsPath = "/api/organizations"

// GetOrganization retrieves an organization by ID
func (c *Client) GetOrganization(ctx context.Context, organizationID int64) (*models.Organization, error) {
	var org models.Organization
	err := c.doJSON(ctx, request{
		op:     "get organization",
		method: http.MethodGet,
		path:   fmt.Sprintf("%s/%d", organizationsPath, organizationID),
	}, &org)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetUserOrganizations lists the organizations a user belongs to
func (c *Client) GetUserOrganizations(ctx context.Context, userID int64) ([]models.Organization, error) {
	orgs := []models.Organization{}
	err := c.doJSON(ctx, request{
		op:     "list user organizations",
		method: http.MethodGet,
		path:   fmt.Sprintf("%s/user/%d", organizationsPath, userID),
	}, &orgs)
	if err != nil {
		return nil, err
	}
	return orgs, nil
}
