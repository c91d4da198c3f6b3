package fb

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

// DefaultAPIEndpoint is the management API host used when no endpoint is
// configured.
const DefaultAPIEndpoint = "api.app.firebolt.io"

// Engine is the management API's view of a compute engine.
type Engine struct {
	Name         string `json:"name"`
	Endpoint     string `json:"endpoint"`
	Status       string `json:"status"`
	Region       string `json:"region"`
	Spec         string `json:"spec"`
	CreateTime   string `json:"create_time"`
	AttachedToDB string `json:"attached_to"`
}

// Database is the management API's view of a database.
type Database struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Region      string `json:"region"`
	DataSize    int64  `json:"data_size"`
	CreateTime  string `json:"create_time"`
}

// APIError is a non-2xx response from the management API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("management API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("management API returned status %d: %s", e.StatusCode, e.Message)
}

// ResourceManager is a thin client for the management REST API. It
// authenticates with client credentials and caches the bearer token until
// expiry.
type ResourceManager struct {
	client       *http.Client
	apiEndpoint  string
	accountName  string
	clientID     string
	clientSecret string

	token       string
	tokenExpiry time.Time
}

// NewResourceManager builds a manager from resolved config.
func NewResourceManager(cfg Config) *ResourceManager {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = DefaultAPIEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	return &ResourceManager{
		client:       &http.Client{Timeout: 30 * time.Second},
		apiEndpoint:  strings.TrimSuffix(endpoint, "/"),
		accountName:  strings.ToLower(cfg.AccountName),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (rm *ResourceManager) authToken(ctx context.Context) (string, error) {
	if rm.token != "" && time.Now().Before(rm.tokenExpiry) {
		return rm.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", rm.clientID)
	form.Set("client_secret", rm.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		rm.apiEndpoint+"/auth/v1/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := rm.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("authentication request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	rm.token = tr.AccessToken
	rm.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second).Add(-time.Minute)
	return rm.token, nil
}

// do issues one authenticated request and decodes the JSON response into
// out when out is non-nil.
func (rm *ResourceManager) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	token, err := rm.authToken(ctx)
	if err != nil {
		return err
	}

	u := rm.apiEndpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := rm.client.Do(req)
	if err != nil {
		return fmt.Errorf("management API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(raw))
}

func (rm *ResourceManager) accountPath(resource string) string {
	return fmt.Sprintf("/v1/accounts/%s/%s", url.PathEscape(rm.accountName), resource)
}

// ListEngines returns the account's engines, optionally filtered by a
// substring of the name.
func (rm *ResourceManager) ListEngines(ctx context.Context, nameContains string) ([]Engine, error) {
	query := url.Values{}
	if nameContains != "" {
		query.Set("filter.name_contains", nameContains)
	}

	var result struct {
		Engines []Engine `json:"engines"`
	}
	if err := rm.do(ctx, http.MethodGet, rm.accountPath("engines"), query, nil, &result); err != nil {
		return nil, err
	}
	return result.Engines, nil
}

// GetEngine looks up one engine by name.
func (rm *ResourceManager) GetEngine(ctx context.Context, name string) (*Engine, error) {
	var result struct {
		Engine Engine `json:"engine"`
	}
	err := rm.do(ctx, http.MethodGet, rm.accountPath("engines/"+url.PathEscape(name)), nil, nil, &result)
	if err != nil {
		return nil, err
	}
	return &result.Engine, nil
}

// StartEngine requests an engine start and returns its new state.
func (rm *ResourceManager) StartEngine(ctx context.Context, name string) (*Engine, error) {
	var result struct {
		Engine Engine `json:"engine"`
	}
	err := rm.do(ctx, http.MethodPost, rm.accountPath("engines/"+url.PathEscape(name)+":start"), nil, nil, &result)
	if err != nil {
		return nil, err
	}
	return &result.Engine, nil
}

// StopEngine requests an engine stop and returns its new state.
func (rm *ResourceManager) StopEngine(ctx context.Context, name string) (*Engine, error) {
	var result struct {
		Engine Engine `json:"engine"`
	}
	err := rm.do(ctx, http.MethodPost, rm.accountPath("engines/"+url.PathEscape(name)+":stop"), nil, nil, &result)
	if err != nil {
		return nil, err
	}
	return &result.Engine, nil
}

// DefaultDatabaseEngine resolves the default engine attached to a database.
// Used when no engine name is configured for a query invocation.
func (rm *ResourceManager) DefaultDatabaseEngine(ctx context.Context, database string) (*Engine, error) {
	var result struct {
		Engine Engine `json:"engine"`
	}
	err := rm.do(ctx, http.MethodGet,
		rm.accountPath("databases/"+url.PathEscape(database)+"/default_engine"), nil, nil, &result)
	if err != nil {
		return nil, err
	}
	if result.Engine.Name == "" {
		return nil, fmt.Errorf("database %s has no default engine attached", database)
	}
	return &result.Engine, nil
}

// ListDatabases returns the account's databases, optionally filtered by a
// substring of the name.
func (rm *ResourceManager) ListDatabases(ctx context.Context, nameContains string) ([]Database, error) {
	query := url.Values{}
	if nameContains != "" {
		query.Set("filter.name_contains", nameContains)
	}

	var result struct {
		Databases []Database `json:"databases"`
	}
	if err := rm.do(ctx, http.MethodGet, rm.accountPath("databases"), query, nil, &result); err != nil {
		return nil, err
	}
	return result.Databases, nil
}

// GetDatabase looks up one database by name.
func (rm *ResourceManager) GetDatabase(ctx context.Context, name string) (*Database, error) {
	var result struct {
		Database Database `json:"database"`
	}
	err := rm.do(ctx, http.MethodGet, rm.accountPath("databases/"+url.PathEscape(name)), nil, nil, &result)
	if err != nil {
		return nil, err
	}
	return &result.Database, nil
}

// CreateDatabase creates a database in the given region.
func (rm *ResourceManager) CreateDatabase(ctx context.Context, name, description, region string) (*Database, error) {
	body := map[string]string{
		"name":        name,
		"description": description,
		"region":      region,
	}

	var result struct {
		Database Database `json:"database"`
	}
	if err := rm.do(ctx, http.MethodPost, rm.accountPath("databases"), nil, body, &result); err != nil {
		return nil, err
	}
	return &result.Database, nil
}

// DropDatabase deletes a database.
func (rm *ResourceManager) DropDatabase(ctx context.Context, name string) error {
	return rm.do(ctx, http.MethodDelete, rm.accountPath("databases/"+url.PathEscape(name)), nil, nil, nil)
}
