// Package testutil provides testing utilities for integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
)

// Client is an HTTP client for testing API endpoints. Authentication is
// a bearer token in the Authorization header.
type Client struct {
	BaseURL     string
	Token       string
	HTTPClient  *http.Client
	Validator   *OpenAPIValidator
	ValidateAPI bool
	t           *testing.T
}

// NewClient creates a new test client without validation.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// NewClientWithValidator creates a new test client with a pre-loaded
// OpenAPI validator. Use this in TestMain where *testing.T is not
// available during initialization.
func NewClientWithValidator(baseURL string, validator *OpenAPIValidator) *Client {
	return &Client{
		BaseURL:     baseURL,
		HTTPClient:  &http.Client{},
		Validator:   validator,
		ValidateAPI: true,
	}
}

// SetT sets the testing.T for validation error reporting.
func (c *Client) SetT(t *testing.T) {
	c.t = t
}

// WithToken returns a copy of the client authenticated with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.Token = token
	return &clone
}

// WithoutValidation returns a copy of the client with validation disabled.
// Use this for negative tests where you expect invalid responses.
func (c *Client) WithoutValidation() *Client {
	clone := *c
	clone.ValidateAPI = false
	return &clone
}

// ClearToken removes the stored token.
func (c *Client) ClearToken() {
	c.Token = ""
}

// GET performs a GET request.
func (c *Client) GET(path string) (*http.Response, error) {
	return c.do(http.MethodGet, path, nil)
}

// POST performs a POST request with JSON body.
func (c *Client) POST(path string, body interface{}) (*http.Response, error) {
	return c.do(http.MethodPost, path, body)
}

// PUT performs a PUT request with JSON body.
func (c *Client) PUT(path string, body interface{}) (*http.Response, error) {
	return c.do(http.MethodPut, path, body)
}

// PATCH performs a PATCH request with JSON body.
func (c *Client) PATCH(path string, body interface{}) (*http.Response, error) {
	return c.do(http.MethodPatch, path, body)
}

// DELETE performs a DELETE request.
func (c *Client) DELETE(path string) (*http.Response, error) {
	return c.do(http.MethodDelete, path, nil)
}

func (c *Client) do(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	var bodyBytes []byte

	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if c.ValidateAPI && c.Validator != nil && c.t != nil {
		if bodyBytes != nil {
			bodyReader = bytes.NewReader(bodyBytes)
		}
		validationReq, _ := http.NewRequest(method, c.BaseURL+path, bodyReader)
		validationReq.Header = req.Header
		validationReq.URL = req.URL

		c.Validator.ValidateResponse(c.t, validationReq, resp)
	}

	return resp, nil
}

// DecodeJSON decodes response body into v.
func DecodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// ReadBody reads and returns response body as string.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}
