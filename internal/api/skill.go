package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"c4sg/internal/models"
)

const skillsPath = "/api/skills"

// GetSkills returns the skill catalog
func (c *Client) GetSkills(ctx context.Context) ([]models.Skill, error) {
	skills := []models.Skill{}
	err := c.doJSON(ctx, request{
		op:     "list skills",
		method: http.MethodGet,
		path:   skillsPath,
	}, &skills)
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// GetSkillsByProject returns the skill names attached to a project
func (c *Client) GetSkillsByProject(ctx context.Context, projectID int64) ([]string, error) {
	names := []string{}
	err := c.doJSON(ctx, request{
		op:     "list project skills",
		method: http.MethodGet,
		path:   skillsPath + "/project",
		query:  projectQuery(projectID),
	}, &names)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// UpdateSkills replaces the skills attached to a project
func (c *Client) UpdateSkills(ctx context.Context, projectID int64, skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	_, err := c.do(ctx, request{
		op:     "update project skills",
		method: http.MethodPut,
		path:   skillsPath + "/project",
		query:  projectQuery(projectID),
		body:   skills,
	})
	return err
}

func projectQuery(projectID int64) url.Values {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(projectID, 10))
	return params
}
