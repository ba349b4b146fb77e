// internal/client/authstate/api.go
package authstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"diaspora-portal-service/internal/domain/auth"
)

// API is the slice of the portal's auth endpoints the state container
// needs. Errors signal transport failure; a decoded response is always a
// definitive server answer.
type API interface {
	Me(ctx context.Context) (*auth.MeResponse, error)
	Login(ctx context.Context, email, password string) (*auth.LoginResponse, error)
	Logout(ctx context.Context) error
}

// HTTPClient talks to the portal over HTTP, holding the session cookie in
// an in-process jar the way a browser tab would.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &HTTPClient{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Me calls the who-am-I endpoint. Only a 200 is definitive; any other
// status or a transport failure comes back as an error so the caller can
// fall back to its cache.
func (c *HTTPClient) Me(ctx context.Context) (*auth.MeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("who-am-i returned status %d", resp.StatusCode)
	}

	var me auth.MeResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("failed to decode who-am-i response: %w", err)
	}
	return &me, nil
}

// Login exchanges credentials for a session cookie. A rejected login is a
// decoded success:false response, not an error.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*auth.LoginResponse, error) {
	body, err := json.Marshal(auth.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var login auth.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &login, nil
}

// Logout posts to the logout endpoint. Callers proceed with local logout
// whatever the outcome.
func (c *HTTPClient) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
