package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"c4sg/internal/models"
)

// Login authenticates the user with the server and stores the session token
func (c *Client) Login(ctx context.Context, email, password string) (*models.Auth, error) {
	var responseMap map[string]interface{}
	err := c.doJSON(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/api/auth/login",
		body: map[string]string{
			"email":    email,
			"password": password,
		},
	}, &responseMap)
	if err != nil {
		return nil, err
	}

	authResponse := &models.Auth{}
	authResponse.UserID, authResponse.Email = extractUserInfo(responseMap)
	authResponse.Token = findAuthToken(responseMap)

	if authResponse.Token == "" {
		return nil, fmt.Errorf("no authentication token found in server response")
	}

	if err := c.UseToken(authResponse.Token); err != nil {
		return nil, err
	}

	return authResponse, nil
}

// UseToken makes token the session token of the client and persists it
func (c *Client) UseToken(token string) error {
	c.AuthToken = token
	if c.tokenStore != nil {
		if err := c.tokenStore.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save auth token: %w", err)
		}
	}
	return nil
}

// Logout clears the authentication token and notifies the server
func (c *Client) Logout(ctx context.Context) error {
	// Only proceed with server logout if we have a token
	if c.token() != "" {
		if _, err := c.do(ctx, request{
			op:     "logout",
			method: http.MethodPost,
			path:   "/api/auth/logout",
		}); err != nil {
			c.logger.WithError(err).Warn("server logout failed")
		}
	}

	// Always clear local token regardless of server response
	c.AuthToken = ""
	if c.tokenStore != nil {
		return c.tokenStore.ClearToken()
	}

	return nil
}

// extractUserInfo extracts user information from the response
func extractUserInfo(responseMap map[string]interface{}) (int64, string) {
	var userID int64
	email := ""

	if userObj, ok := responseMap["user"].(map[string]interface{}); ok {
		// Extract user ID from various possible fields
		for _, field := range []string{"id", "userId", "uid"} {
			if id, ok := parseID(userObj[field]); ok {
				userID = id
				break
			}
		}

		if userEmail, ok := userObj["email"].(string); ok {
			email = userEmail
		}
	}

	return userID, email
}

// findAuthToken looks for an authentication token in the response body
func findAuthToken(responseMap map[string]interface{}) string {
	for _, field := range []string{"token", "access_token", "id_token"} {
		if token, ok := responseMap[field].(string); ok && token != "" {
			return token
		}
	}
	return ""
}

func parseID(v interface{}) (int64, bool) {
	switch id := v.(type) {
	case float64:
		return int64(id), id != 0
	case json.Number:
		n, err := id.Int64()
		return n, err == nil && n != 0
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		return n, err == nil && n != 0
	}
	return 0, false
}
