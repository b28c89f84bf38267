// Package client talks to the progress store HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
)

// Credential is what a successful login hands back.
type Credential struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("store_client"),
	}
}

func (c *Client) Signup(ctx context.Context, email, password, parentName string) (string, error) {
	var out struct {
		UserID string `json:"userId"`
	}
	body := map[string]string{"email": email, "password": password, "parentName": parentName}
	if err := c.do(ctx, http.MethodPost, "/api/signup", "", body, &out); err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Credential, error) {
	var out Credential
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveChild(ctx context.Context, token string, child models.ChildProfile) error {
	body := map[string]any{"childName": child.ChildName, "childAge": child.ChildAge, "avatar": child.Avatar}
	return c.do(ctx, http.MethodPost, "/api/child-profile", token, body, nil)
}

func (c *Client) SaveProgress(ctx context.Context, token string, record models.ProgressRecord) error {
	return c.do(ctx, http.MethodPost, "/api/progress", token, record, nil)
}

func (c *Client) UserData(ctx context.Context, token string) (*models.UserData, error) {
	var out struct {
		Data models.UserData `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/user-data", token, nil, &out); err != nil {
		return nil, err
	}
	if out.Data.Progress != nil {
		out.Data.Progress.Progress = progress.Normalize(out.Data.Progress.Progress)
	}
	return &out.Data, nil
}

func (c *Client) Summary(ctx context.Context, token string) (*progress.Summary, error) {
	var out struct {
		Data progress.Summary `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/summary", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// do sends one JSON request. Transport failures and 5xx answers come back as
// PERSISTENCE_UNAVAILABLE; a 401 on an authenticated call is SESSION_INVALID.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	log := logger.FromContext(ctx).WithPrefix("store_client").WithField("path", path)

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed: %v", err)
		return errors.NewPersistenceUnavailableError(err)
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode >= 300 {
		remote := decodeError(resp)
		switch {
		case resp.StatusCode == http.StatusUnauthorized && token != "":
			return errors.NewSessionInvalidError(remote)
		case resp.StatusCode >= 500:
			return errors.NewPersistenceUnavailableError(remote)
		}
		return remote
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return errors.NewPersistenceUnavailableError(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

func decodeError(resp *http.Response) *errors.AppError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Fields  map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error.Code == "" {
		return &errors.AppError{
			Code:    errors.ErrCodeInternal,
			Message: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
			Status:  resp.StatusCode,
		}
	}
	return &errors.AppError{
		Code:    payload.Error.Code,
		Message: payload.Error.Message,
		Status:  resp.StatusCode,
		Fields:  payload.Error.Fields,
	}
}
