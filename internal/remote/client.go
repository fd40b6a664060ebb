// Package remote is the HTTP+JSON client for the dart game service.
// Every response payload is validated before use; a payload that fails
// validation is surfaced as an error so callers can treat it as absent.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP client for the remote dart game API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AddGame uploads a finished game and returns the authoritative results
func (c *Client) AddGame(ctx context.Context, payload GamePayload) ([]PlayerResult, error) {
	var resp addGameResponse
	if err := c.do(ctx, http.MethodPost, "/api/dartgame/add", payload, &resp); err != nil {
		return nil, err
	}

	if len(resp.PlayerResults) == 0 {
		return nil, fmt.Errorf("add game: %w", errMissingResults)
	}
	for _, r := range resp.PlayerResults {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("add game: %w", err)
		}
	}
	return resp.PlayerResults, nil
}

// MostRecentGames fetches the latest completed games from the server
func (c *Client) MostRecentGames(ctx context.Context, amount int) ([]GameRecord, error) {
	var games []GameRecord
	path := fmt.Sprintf("/api/DartGame/GetMostRecent/%d", amount)
	if err := c.do(ctx, http.MethodGet, path, nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// AllUsers fetches the remote user roster
func (c *Client) AllUsers(ctx context.Context) ([]UserDTO, error) {
	var users []UserDTO
	if err := c.do(ctx, http.MethodGet, "/api/user/getall", nil, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if err := u.validate(); err != nil {
			return nil, fmt.Errorf("get all users: %w", err)
		}
	}
	return users, nil
}

// UserByID fetches a single remote user
func (c *Client) UserByID(ctx context.Context, id string) (*UserDTO, error) {
	var user UserDTO
	path := "/api/user/getbyid/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	if err := user.validate(); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

// AddUser pushes a locally created user to the remote identity store
func (c *Client) AddUser(ctx context.Context, username, alias, rfid string) (*UserDTO, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("alias", alias)
	q.Set("rfid", rfid)

	var user UserDTO
	if err := c.do(ctx, http.MethodPost, "/api/user/add?"+q.Encode(), nil, &user); err != nil {
		return nil, err
	}
	if err := user.validate(); err != nil {
		return nil, fmt.Errorf("add user %s: %w", username, err)
	}
	return &user, nil
}

// do performs an HTTP request and decodes the JSON response
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
