package gameclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brainbreak/brainbreak-api/internal/handler"
	"github.com/brainbreak/brainbreak-api/internal/model"
)

// Client is an HTTP client for the game API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken updates the client's bearer token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is an error response from the API.
type APIError struct {
	StatusCode        int
	Message           string
	NeedsVerification bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Do performs an HTTP request and decodes the response into result.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

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
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var errResp handler.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.NeedsVerification = errResp.NeedsVerification
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPut, path, body, result)
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, email, username, password string) (*handler.SignupResponse, error) {
	var resp handler.SignupResponse
	req := handler.SignupRequest{Email: email, Username: username, Password: password}
	if err := c.Post(ctx, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signin authenticates and stores the returned token on the client.
func (c *Client) Signin(ctx context.Context, email, password string) (*handler.SessionResponse, error) {
	var resp handler.SessionResponse
	req := handler.SigninRequest{Email: email, Password: password}
	if err := c.Post(ctx, "/api/auth/signin", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Verify submits a verification code and stores the returned token.
func (c *Client) Verify(ctx context.Context, email, code string) (*handler.SessionResponse, error) {
	var resp handler.SessionResponse
	req := handler.VerifyRequest{Email: email, Code: code}
	if err := c.Post(ctx, "/api/auth/verify", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Resend requests a fresh verification code.
func (c *Client) Resend(ctx context.Context, email string) (*handler.ResendResponse, error) {
	var resp handler.ResendResponse
	if err := c.Post(ctx, "/api/auth/resend", handler.ResendRequest{Email: email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateRoom creates a new waiting room hosted by the signed-in user.
func (c *Client) CreateRoom(ctx context.Context) (*model.Room, error) {
	var resp handler.RoomResponse
	if err := c.Post(ctx, "/api/multiplayer/create", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Room, nil
}

// JoinRoom claims the oldest available waiting room.
func (c *Client) JoinRoom(ctx context.Context) (*model.Room, error) {
	var resp handler.RoomResponse
	if err := c.Post(ctx, "/api/multiplayer/join", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Room, nil
}

// GetRoom fetches the current room state.
func (c *Client) GetRoom(ctx context.Context, roomID string) (*model.Room, error) {
	var resp handler.RoomResponse
	if err := c.Get(ctx, "/api/multiplayer/"+roomID, &resp); err != nil {
		return nil, err
	}
	return resp.Room, nil
}

// UpdateRoom applies a partial update to a room.
func (c *Client) UpdateRoom(ctx context.Context, roomID string, req handler.UpdateRoomRequest) (*model.Room, error) {
	var resp handler.RoomResponse
	if err := c.Put(ctx, "/api/multiplayer/"+roomID, req, &resp); err != nil {
		return nil, err
	}
	return resp.Room, nil
}

// SubmitMove reports a resolved pair attempt for the caller's turn.
func (c *Client) SubmitMove(ctx context.Context, roomID string, matched bool, version int64) (*model.Room, error) {
	var resp handler.RoomResponse
	req := handler.MoveRequest{Matched: matched, Version: version}
	if err := c.Post(ctx, "/api/multiplayer/"+roomID+"/move", req, &resp); err != nil {
		return nil, err
	}
	return resp.Room, nil
}

// FinishRoom requests the terminal transition for a room.
func (c *Client) FinishRoom(ctx context.Context, roomID string) (*model.Room, error) {
	var resp handler.RoomResponse
	if err := c.Post(ctx, "/api/multiplayer/"+roomID+"/finish", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Room, nil
}

// UpdateStats reports a finished solo game for the signed-in user.
func (c *Client) UpdateStats(ctx context.Context, highScore int, won *bool) (*model.Account, error) {
	var resp handler.UserResponse
	req := handler.UpdateStatsRequest{HighScore: highScore, Won: won}
	if err := c.Put(ctx, "/api/user/stats", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Leaderboard fetches the top verified players.
func (c *Client) Leaderboard(ctx context.Context) ([]*model.Account, error) {
	var resp handler.LeaderboardResponse
	if err := c.Get(ctx, "/api/leaderboard", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
