package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"c4sg/internal/models"
)

const projectsPath = "/api/projects"

// SearchProjects runs a project search. Query.Page is 1-based and sent 0-based.
func (c *Client) SearchProjects(ctx context.Context, q models.SearchQuery) (*models.ProjectPage, error) {
	params := url.Values{}

	if q.Keyword != "" {
		params.Set("keyWord", q.Keyword)
	}
	for _, skill := range q.Skills {
		params.Add("skills", skill)
	}
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}
	if q.Remote != "" {
		params.Set("remote", q.Remote)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page-1))
	}
	if q.Size > 0 {
		params.Set("size", strconv.Itoa(q.Size))
	}

	body, err := c.do(ctx, request{
		op:     "project search",
		method: http.MethodGet,
		path:   projectsPath + "/search",
		query:  params,
	})
	if err != nil {
		return nil, err
	}

	return decodeProjectPage(body)
}

// GetProject retrieves a project by ID
func (c *Client) GetProject(ctx context.Context, projectID int64) (*models.Project, error) {
	var project models.Project
	err := c.doJSON(ctx, request{
		op:     "get project",
		method: http.MethodGet,
		path:   fmt.Sprintf("%s/%d", projectsPath, projectID),
	}, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectsByOrganization lists the projects of an organization. An empty status lists all of them.
func (c *Client) GetProjectsByOrganization(ctx context.Context, organizationID int64, status models.ProjectStatus) ([]models.Project, error) {
	params := url.Values{}
	params.Set("organizationId", strconv.FormatInt(organizationID, 10))
	if status != "" {
		params.Set("projectStatus", string(status))
	}

	projects := []models.Project{}
	err := c.doJSON(ctx, request{
		op:     "list organization projects",
		method: http.MethodGet,
		path:   projectsPath + "/organization",
		query:  params,
	}, &projects)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectsByUser lists the projects a user has applied to or bookmarked
func (c *Client) GetProjectsByUser(ctx context.Context, userID int64, status models.LinkStatus) ([]models.Project, error) {
	params := url.Values{}
	params.Set("userId", strconv.FormatInt(userID, 10))
	params.Set("userProjectStatus", string(status))

	projects := []models.Project{}
	err := c.doJSON(ctx, request{
		op:     "list user projects",
		method: http.MethodGet,
		path:   projectsPath + "/user",
		query:  params,
	}, &projects)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a new project
func (c *Client) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	var created models.Project
	err := c.doJSON(ctx, request{
		op:     "project creation",
		method: http.MethodPost,
		path:   projectsPath,
		body:   project,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject updates a project. The returned project is the server's copy when it
// sends one back, otherwise the given project.
func (c *Client) UpdateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	var updated models.Project
	body, err := c.do(ctx, request{
		op:     "project update",
		method: http.MethodPut,
		path:   fmt.Sprintf("%s/%d", projectsPath, project.ID),
		body:   project,
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return project, nil
	}
	if err := decodeInto(body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SaveProjectImage stores the image URL of a project
func (c *Client) SaveProjectImage(ctx context.Context, projectID int64, imgURL string) error {
	params := url.Values{}
	params.Set("imgUrl", imgURL)

	_, err := c.do(ctx, request{
		op:     "save project image",
		method: http.MethodPut,
		path:   fmt.Sprintf("%s/%d/image", projectsPath, projectID),
		query:  params,
	})
	return err
}

// GetProjectImage returns the image URL of a project
func (c *Client) GetProjectImage(ctx context.Context, projectID int64) (string, error) {
	var response struct {
		URL string `json:"url"`
	}
	err := c.doJSON(ctx, request{
		op:     "get project image",
		method: http.MethodGet,
		path:   fmt.Sprintf("%s/%d/image", projectsPath, projectID),
	}, &response)
	if err != nil {
		return "", err
	}
	return response.URL, nil
}

// DeleteProject deletes a project
func (c *Client) DeleteProject(ctx context.Context, projectID int64) error {
	_, err := c.do(ctx, request{
		op:     "project deletion",
		method: http.MethodDelete,
		path:   fmt.Sprintf("%s/%d", projectsPath, projectID),
	})
	return err
}

// LinkUserProject creates an applied or bookmarked link between a user and a project
func (c *Client) LinkUserProject(ctx context.Context, projectID, userID int64, status models.LinkStatus) error {
	if _, err := models.ParseLinkStatus(string(status)); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("userProjectStatus", string(status))

	_, err := c.do(ctx, request{
		op:     "link user to project",
		method: http.MethodPost,
		path:   fmt.Sprintf("%s/%d/users/%d", projectsPath, projectID, userID),
		query:  params,
	})
	return err
}
