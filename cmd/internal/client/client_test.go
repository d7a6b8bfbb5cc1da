package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devjournal/cmd/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entryJSON = `{"id":"e1","title":"T","content":"C",
	"created_at":"2024-03-01T10:00:00.000Z","updated_at":"2024-03-01T10:00:01.500Z"}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", srv.Client())
}

func TestListEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/entries", r.URL.Path)
		_, _ = io.WriteString(w, `{"entries":[`+entryJSON+`]}`)
	})

	entries, err := c.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "e1", entries[0].ID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), entries[0].CreatedAt.UTC())
	assert.Equal(t, 1500*time.Millisecond, entries[0].UpdatedAt.Sub(entries[0].CreatedAt))
}

func TestListEntries_EmptyIsNotNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"entries":null}`)
	})

	entries, err := c.ListEntries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
}

func TestCreateEntry_SendsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req contract.EntryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, contract.EntryRequest{Title: "T", Content: "C"}, req)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"entry":`+entryJSON+`}`)
	})

	entry, err := c.CreateEntry(context.Background(), "T", "C")
	require.NoError(t, err)
	assert.Equal(t, "e1", entry.ID)
}

func TestUpdateAndDelete_Paths(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.EscapedPath())
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, `{"entry":`+entryJSON+`}`)
	})

	_, err := c.UpdateEntry(context.Background(), "e1", "T", "C")
	require.NoError(t, err)
	require.NoError(t, c.DeleteEntry(context.Background(), "a/b"))

	assert.Equal(t, []string{"PUT /api/entries/e1", "DELETE /api/entries/a%2Fb"}, seen)
}

func TestErrors_ValidationEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"Validation failed","code":"VALIDATION_ERROR",
			"details":[{"field":"title","message":"Title is required"}]}}`)
	})

	_, err := c.CreateEntry(context.Background(), "", "C")

	var apierr *APIError
	require.ErrorAs(t, err, &apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apierr.Code)
	assert.Equal(t, "Validation failed", apierr.Message)
	assert.Equal(t, []contract.FieldError{{Field: "title", Message: "Title is required"}}, apierr.Details)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestErrors_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `<html>404</html>`)
	})

	_, err := c.GetEntry(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	var apierr *APIError
	require.ErrorAs(t, err, &apierr)
	assert.Equal(t, "Not found", apierr.Message)
}

func TestErrors_NotFoundKeepsServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"message":"Entry not found","code":"NOT_FOUND"}}`)
	})

	err := c.DeleteEntry(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Entry not found (NOT_FOUND)", err.Error())
}

func TestErrors_UnparsableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `upstream timed out`)
	})

	_, err := c.ListEntries(context.Background())

	var apierr *APIError
	require.ErrorAs(t, err, &apierr)
	assert.Equal(t, http.StatusBadGateway, apierr.Status)
	assert.Equal(t, "An unexpected error occurred", apierr.Message)
	assert.Empty(t, apierr.Code)
}

func TestErrors_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.ListEntries(context.Background())
	require.Error(t, err)

	var apierr *APIError
	assert.False(t, errors.As(err, &apierr))
}
