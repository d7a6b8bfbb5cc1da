// Package client talks to the journal REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"devjournal/cmd/internal/contract"
)

const DefaultBaseURL = "http://localhost:3000/api"

var (
	// ErrNotFound matches any *APIError describing a missing entry.
	ErrNotFound = errors.New("not found")
)

const unexpectedMessage = "An unexpected error occurred"

type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// APIError is a non-2xx answer of the server.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details []contract.FieldError
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Code == "NOT_FOUND"
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the API rooted at baseURL, e.g.
// "http://localhost:3000/api". A nil httpClient gets a 30s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListEntries(ctx context.Context) ([]*Entry, error) {
	var resp struct {
		Entries []*Entry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/entries", nil, &resp); err != nil {
		return nil, err
	}

	if resp.Entries == nil {
		resp.Entries = []*Entry{}
	}
	return resp.Entries, nil
}

func (c *Client) GetEntry(ctx context.Context, id string) (*Entry, error) {
	var resp entryEnvelope
	if err := c.do(ctx, http.MethodGet, entryPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entry, nil
}

func (c *Client) CreateEntry(ctx context.Context, title, content string) (*Entry, error) {
	req := &contract.EntryRequest{Title: title, Content: content}

	var resp entryEnvelope
	if err := c.do(ctx, http.MethodPost, "/entries", req, &resp); err != nil {
		return nil, err
	}
	return resp.Entry, nil
}

func (c *Client) UpdateEntry(ctx context.Context, id, title, content string) (*Entry, error) {
	req := &contract.EntryRequest{Title: title, Content: content}

	var resp entryEnvelope
	if err := c.do(ctx, http.MethodPut, entryPath(id), req, &resp); err != nil {
		return nil, err
	}
	return resp.Entry, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, entryPath(id), nil, nil)
}

type entryEnvelope struct {
	Entry *Entry `json:"entry"`
}

func entryPath(id string) string {
	return "/entries/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError reads the error envelope. A 404 is always NOT_FOUND, even
// when the body is not the API's (a proxy or a wrong base URL).
func decodeError(resp *http.Response) error {
	apierr := &APIError{Status: resp.StatusCode}

	var env contract.ErrorEnvelope
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		err = json.Unmarshal(raw, &env)
	}

	if err == nil && env.Error.Message != "" {
		apierr.Message = env.Error.Message
		apierr.Code = env.Error.Code
		apierr.Details = env.Error.Details
	} else {
		apierr.Message = unexpectedMessage
	}

	if resp.StatusCode == http.StatusNotFound {
		apierr.Code = "NOT_FOUND"
		if apierr.Message == unexpectedMessage {
			apierr.Message = "Not found"
		}
	}
	return apierr
}
