package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	// DefaultBaseURL is the public Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"

	// APIVersion is sent as the Notion-Version header.
	APIVersion = "2022-06-28"

	// MaxPageSize is the largest page_size the query endpoint accepts.
	MaxPageSize = 100
)

// Config holds client settings.
type Config struct {
	Token    string
	BaseURL  string
	PageSize int
	Timeout  time.Duration

	// Logger receives one line per request when Verbose is set.
	Logger  *log.Logger
	Verbose bool
}

// Client talks to the Notion API.
type Client struct {
	token    string
	baseURL  string
	pageSize int
	http     *http.Client
	logger   *log.Logger
	verbose  bool
}

// New creates a Client. Zero values in cfg fall back to defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 || cfg.PageSize > MaxPageSize {
		cfg.PageSize = MaxPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "[notion] ", log.LstdFlags)
	}
	return &Client{
		token:    cfg.Token,
		baseURL:  cfg.BaseURL,
		pageSize: cfg.PageSize,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   cfg.Logger,
		verbose:  cfg.Verbose,
	}
}

// QueryDatabase returns every page of the database, following next_cursor
// while the API reports has_more. Pages are returned in arrival order.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]Page, error) {
	path := "/v1/databases/" + url.PathEscape(databaseID) + "/query"

	var (
		pages  []Page
		cursor string
	)
	for {
		var resp queryResponse
		req := queryRequest{StartCursor: cursor, PageSize: c.pageSize}
		if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}
		pages = append(pages, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		cursor = *resp.NextCursor
	}
	return pages, nil
}

// CreatePage creates a page and returns it.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", req, &page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return &page, nil
}

// UpdatePage updates the properties and optionally the icon of a page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, req UpdatePageRequest) (*Page, error) {
	var page Page
	path := "/v1/pages/" + url.PathEscape(pageID)
	if err := c.do(ctx, http.MethodPatch, path, req, &page); err != nil {
		return nil, fmt.Errorf("failed to update page %s: %w", pageID, err)
	}
	return &page, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	if c.verbose {
		c.logger.Printf("%s %s", method, path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(bytes.TrimSpace(data))
	}
	apiErr.Status = resp.StatusCode
	return apiErr
}
