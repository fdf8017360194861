package api

import (
	"encoding/json"
	"fmt"

	"c4sg/internal/models"

	"github.com/tidwall/gjson"
)

// errorMessage extracts the "message" field of a JSON error body
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	return gjson.GetBytes(body, "message").String()
}

// decodeProjectPage maps a Spring page ({content, totalElements}) to a ProjectPage
func decodeProjectPage(body []byte) (*models.ProjectPage, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("error decoding response: invalid JSON")
	}

	page := &models.ProjectPage{Data: []models.Project{}}
	if content := gjson.GetBytes(body, "content"); content.Exists() && content.IsArray() {
		if err := json.Unmarshal([]byte(content.Raw), &page.Data); err != nil {
			return nil, fmt.Errorf("error decoding response: %w", err)
		}
	}
	page.TotalItems = int(gjson.GetBytes(body, "totalElements").Int())

	return page, nil
}

func decodeInto(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
