package zotero

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
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the public Zotero Web API endpoint.
	DefaultBaseURL = "https://api.zotero.org"

	// APIVersion is sent as the Zotero-API-Version header.
	APIVersion = "3"

	// MaxPageSize is the largest limit the API accepts.
	MaxPageSize = 100
)

// Library types.
const (
	LibraryUser  = "user"
	LibraryGroup = "group"
)

// Config holds client settings.
type Config struct {
	LibraryID   string
	LibraryType string
	APIKey      string
	BaseURL     string
	PageSize    int
	Timeout     time.Duration

	// Logger receives one line per request when Verbose is set.
	Logger  *log.Logger
	Verbose bool
}

// Client reads one Zotero library.
type Client struct {
	prefix   string
	apiKey   string
	baseURL  string
	pageSize int
	http     *http.Client
	logger   *log.Logger
	verbose  bool
}

// New creates a Client for the library described by cfg.
func New(cfg Config) (*Client, error) {
	var segment string
	switch cfg.LibraryType {
	case LibraryUser:
		segment = "users"
	case LibraryGroup:
		segment = "groups"
	default:
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidLibraryType, cfg.LibraryType)
	}
	if cfg.LibraryID == "" {
		return nil, fmt.Errorf("library id cannot be empty")
	}

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
		cfg.Logger = log.New(os.Stderr, "[zotero] ", log.LstdFlags)
	}

	return &Client{
		prefix:   "/" + segment + "/" + url.PathEscape(cfg.LibraryID),
		apiKey:   cfg.APIKey,
		baseURL:  cfg.BaseURL,
		pageSize: cfg.PageSize,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   cfg.Logger,
		verbose:  cfg.Verbose,
	}, nil
}

// TopItems returns every top-level item of the library, newest first.
//
// Pages are requested by start offset until the Total-Results header says
// the library is exhausted. A short page also ends the walk, which covers
// servers that omit the header.
func (c *Client) TopItems(ctx context.Context) ([]Item, error) {
	var items []Item
	start := 0
	for {
		page, total, err := c.topPage(ctx, start)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch items at offset %d: %w", start, err)
		}
		items = append(items, page...)
		start += len(page)

		if len(page) < c.pageSize {
			break
		}
		if total >= 0 && start >= total {
			break
		}
	}
	return items, nil
}

// topPage fetches one page. total is -1 when the response has no
// Total-Results header.
func (c *Client) topPage(ctx context.Context, start int) ([]Item, int, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("sort", "dateAdded")
	q.Set("direction", "desc")
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("start", strconv.Itoa(start))

	endpoint := c.baseURL + c.prefix + "/items/top?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Zotero-API-Version", APIVersion)
	if c.apiKey != "" {
		req.Header.Set("Zotero-API-Key", c.apiKey)
	}

	if c.verbose {
		c.logger.Printf("GET %s/items/top start=%d limit=%d", c.prefix, start, c.pageSize)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, 0, fmt.Errorf("failed to decode items: %w", err)
	}

	total := -1
	if h := resp.Header.Get("Total-Results"); h != "" {
		if n, err := strconv.Atoi(h); err == nil {
			total = n
		}
	}
	return items, total, nil
}
