// file: internal/metadata/openlibrary.go
// version: 2.0.0
// guid: 1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d

package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultOpenLibraryBaseURL = "https://openlibrary.org"
	openLibraryCoversURL      = "https://covers.openlibrary.org/b/id/%d-M.jpg"
)

// OpenLibraryClient looks up covers through the Open Library search API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenLibraryClient creates a client; an empty baseURL uses openlibrary.org.
func NewOpenLibraryClient(baseURL string, httpClient *http.Client) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = defaultOpenLibraryBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &OpenLibraryClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the display name for this metadata source.
func (c *OpenLibraryClient) Name() string {
	return "openlibrary"
}

// SearchResult represents a book search result from Open Library
type SearchResult struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	CoverI     int      `json:"cover_i"`
}

// SearchResponse represents the API response from Open Library search
type SearchResponse struct {
	NumFound int            `json:"numFound"`
	Docs     []SearchResult `json:"docs"`
}

// FindCover returns the medium cover image of the first matching work.
func (c *OpenLibraryClient) FindCover(ctx context.Context, title, author string) (string, error) {
	params := url.Values{}
	params.Set("title", title)
	if author != "" {
		params.Set("author", author)
	}
	params.Set("limit", "1")
	params.Set("fields", "title,author_name,cover_i")
	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build Open Library request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to search Open Library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Open Library API returned status %d", resp.StatusCode)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode Open Library response: %w", err)
	}

	if len(searchResp.Docs) == 0 || searchResp.Docs[0].CoverI <= 0 {
		return "", nil
	}
	return fmt.Sprintf(openLibraryCoversURL, searchResp.Docs[0].CoverI), nil
}

// TestConnection performs a cheap search to confirm the API is reachable.
func (c *OpenLibraryClient) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := c.FindCover(ctx, "The Hobbit", "Tolkien")
	return err
}
