// Package rest implements the repository interfaces against a hosted
// PostgREST-style row API, for installations backed by a managed store
// instead of the local SQLite file.
package rest

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

// rowClient speaks the row API dialect: one resource per table, filters as
// query parameters (id=eq.<id>), mutations returning the written rows when
// asked via the Prefer header.
type rowClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func newRowClient(baseURL, apiKey string, httpClient *http.Client) *rowClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &rowClient{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIKey:     apiKey,
		HTTPClient: httpClient,
	}
}

func eq(value string) string { return "eq." + value }

func (c *rowClient) do(ctx context.Context, method, table string, query url.Values, body any, returning bool) ([]byte, error) {
	endpoint := c.BaseURL + "/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", table, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", table, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("apikey", c.APIKey)
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	if returning {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s request: %w", table, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", table, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s request failed with status %d: %s", table, resp.StatusCode, errorDetail(respBody))
	}
	return respBody, nil
}

// getRows fetches rows matching the query.
func (c *rowClient) getRows(ctx context.Context, table string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, table, query, nil, false)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", table, err)
	}
	return nil
}

// insertRow inserts one row; when out is non-nil the written row is decoded
// into it.
func (c *rowClient) insertRow(ctx context.Context, table string, row any, out any) error {
	body, err := c.do(ctx, http.MethodPost, table, nil, row, out != nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeFirst(body, table, out)
}

// updateRows patches rows matching the query and decodes the first written
// row into out when non-nil. A patch matching zero rows is an error: the
// row API silently returns an empty set for unknown ids.
func (c *rowClient) updateRows(ctx context.Context, table string, query url.Values, patch any, out any) error {
	body, err := c.do(ctx, http.MethodPatch, table, query, patch, true)
	if err != nil {
		return err
	}
	if out != nil {
		return decodeFirst(body, table, out)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", table, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no %s row matched", table)
	}
	return nil
}

// deleteRows deletes rows matching the query, failing on an empty match.
func (c *rowClient) deleteRows(ctx context.Context, table string, query url.Values) error {
	body, err := c.do(ctx, http.MethodDelete, table, query, nil, true)
	if err != nil {
		return err
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", table, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no %s row matched", table)
	}
	return nil
}

// decodeFirst decodes the first element of a row-array response.
func decodeFirst(body []byte, table string, out any) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", table, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no %s row matched", table)
	}
	if err := json.Unmarshal(rows[0], out); err != nil {
		return fmt.Errorf("failed to decode %s row: %w", table, err)
	}
	return nil
}

// errorDetail extracts the message field the row API puts in error bodies.
func errorDetail(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return detail
}
