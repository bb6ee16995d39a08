// services/supabase.go - Supabase Auth (GoTrue) admin API client
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"superadmin/config"
	"superadmin/models"
)

const (
	adminUsersPath   = "/auth/v1/admin/users"
	maxResponseBytes = 16 * 1024 * 1024
)

// SupabaseOption configures a SupabaseClient.
type SupabaseOption func(*SupabaseClient)

// WithHTTPClient replaces the HTTP client used to reach the provider.
func WithHTTPClient(c *http.Client) SupabaseOption {
	return func(s *SupabaseClient) {
		s.httpClient = c
	}
}

// SupabaseClient calls the Supabase Auth admin endpoints with the service
// role key. It is safe for concurrent use.
type SupabaseClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewSupabaseClient creates a client for the project configured in cfg.
func NewSupabaseClient(cfg *config.Config, opts ...SupabaseOption) *SupabaseClient {
	client := &SupabaseClient{
		baseURL:    strings.TrimSuffix(cfg.SupabaseURL, "/"),
		serviceKey: cfg.ServiceRoleKey,
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: cfg.ProviderTimeout}
	}
	return client
}

// ListUsers returns one page of users.
func (s *SupabaseClient) ListUsers(ctx context.Context, page, perPage int) ([]models.User, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var payload struct {
		Users []models.User `json:"users"`
	}
	if err := s.do(ctx, "list_users", http.MethodGet, adminUsersPath, query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Users, nil
}

// UpdateUserByID applies attrs to the user with the given id and returns
// the updated record.
func (s *SupabaseClient) UpdateUserByID(ctx context.Context, id string, attrs models.UserAttributes) (*models.User, error) {
	path := adminUsersPath + "/" + url.PathEscape(id)

	var user models.User
	if err := s.do(ctx, "update_user", http.MethodPut, path, nil, attrs, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SupabaseClient) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	err := s.send(ctx, method, path, query, body, out)
	observeProviderCall(operation, start, err)
	return err
}

func (s *SupabaseClient) send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("supabase: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := s.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("supabase: new request: %w", err)
	}
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Message: MsgProviderUnavailable, Cause: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return &ProviderError{Status: res.StatusCode, Message: MsgProviderUnavailable, Cause: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeProviderError(res.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ProviderError{
			Status:  res.StatusCode,
			Message: MsgInvalidResponse,
			Cause:   fmt.Errorf("decode provider response: %w", err),
		}
	}
	return nil
}

// decodeProviderError reads the error body shapes GoTrue has used over
// time: {msg}, {message}, {error, error_description}.
func decodeProviderError(status int, data []byte) *ProviderError {
	var payload struct {
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Err              string `json:"error"`
	}
	_ = json.Unmarshal(data, &payload)

	perr := &ProviderError{Status: status, Code: payload.ErrorCode}
	for _, candidate := range []string{payload.Msg, payload.Message, payload.ErrorDescription, payload.Err} {
		if candidate != "" {
			perr.Message = candidate
			break
		}
	}
	if perr.Message == "" {
		perr.Message = http.StatusText(status)
	}
	if perr.Message == "" {
		perr.Message = fmt.Sprintf("provider returned status %d", status)
	}
	return perr
}
