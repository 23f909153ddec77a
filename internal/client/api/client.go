// Package api is the HTTP client for the case storage service. Storage
// failures surface as opaque, retryable errors; callers render a retry
// banner rather than crash.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cjmtools/caseintake/internal/common"
	"github.com/cjmtools/caseintake/internal/models"
)

// AppendRequest carries the five record fields of an append call.
type AppendRequest struct {
	Name        string  `json:"name"`
	CaseNumber  string  `json:"case_number"`
	CrimeNumber *string `json:"crime_number,omitempty"`
	ForwardDate *string `json:"forward_date,omitempty"`
	ManualNote  string  `json:"manual_note"`
}

// Store is the storage collaborator as seen by the intake flow.
type Store interface {
	Append(ctx context.Context, req AppendRequest) error
	ListAll(ctx context.Context) ([]models.CaseRecord, error)
}

// Client talks JSON over HTTP to the storage server and holds the bearer
// token issued by Login.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL returns the server address, shareable as the live link.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = t
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// LoggedIn reports whether a login has succeeded since the last logout.
func (c *Client) LoggedIn() bool { return c.bearer() != "" }

// Logout drops the access token. Purely client-side; the gate keeps no
// session state.
func (c *Client) Logout() { c.setToken("") }

type loginRequest struct {
	Passcode string `json:"passcode"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges the operator passcode for an access token.
func (c *Client) Login(ctx context.Context, passcode string) error {
	body, err := json.Marshal(loginRequest{Passcode: passcode})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: login status %d", common.ErrUnavailable, resp.StatusCode)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	c.setToken(lr.AccessToken)
	return nil
}

// Append persists one record.
func (c *Client) Append(ctx context.Context, appendReq AppendRequest) error {
	body, err := json.Marshal(appendReq)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/records", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.AuthorizationHeader, "Bearer "+c.bearer())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		return common.ErrValidation
	case resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: append status %d", common.ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// ListAll fetches every record. Ordering is not guaranteed by the server;
// callers sort by CreatedAt descending before display or export.
func (c *Client) ListAll(ctx context.Context) ([]models.CaseRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/records", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthorizationHeader, "Bearer "+c.bearer())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, common.ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: list status %d", common.ErrUnavailable, resp.StatusCode)
	}

	var records []models.CaseRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	return records, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
