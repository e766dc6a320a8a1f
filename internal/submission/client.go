package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category is one {id, name} pair from the category listing, fetched once
// before the form is shown.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// APIClient talks to the catalog backend. It implements RecordCreator.
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchCategories loads the {id, name} pairs the category selector shows.
func (c *APIClient) FetchCategories(ctx context.Context) ([]Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: category listing returned %d: %s", resp.StatusCode, readDetail(resp.Body))
	}

	var categories []Category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, fmt.Errorf("catalog: decode categories: %w", err)
	}
	return categories, nil
}

// CreateProduct POSTs the record. Non-2xx responses surface the server's
// detail message instead of discarding the body.
func (c *APIClient) CreateProduct(ctx context.Context, rec ProductRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("catalog: marshal product: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/products", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("catalog: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("catalog: product creation returned %d: %s", resp.StatusCode, readDetail(resp.Body))
	}
	return nil
}

// ReportOrphan registers a bucket object whose record never committed so the
// backend can garbage-collect it.
func (c *APIClient) ReportOrphan(ctx context.Context, path, reason string) error {
	body, err := json.Marshal(map[string]string{"path": path, "reason": reason})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads/orphans", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("catalog: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("catalog: orphan report returned %d: %s", resp.StatusCode, readDetail(resp.Body))
	}
	return nil
}

// readDetail extracts the {"detail": ...} message from an error body, falling
// back to the raw text. Bounded read — error bodies are small.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "(empty body)"
	}
	var envelope struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	return string(bytes.TrimSpace(raw))
}
