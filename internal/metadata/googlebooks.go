// file: internal/metadata/googlebooks.go
// version: 2.0.0
// guid: b2c3d4e5-f6a7-8b9c-0d1e-f2a3b4c5d6e7

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

const defaultGoogleBooksBaseURL = "https://www.googleapis.com/books/v1"

// GoogleBooksClient looks up covers through the Google Books Volume API.
// No API key is required for basic searches (free tier, ~1000 req/day).
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewGoogleBooksClient creates a client; an empty baseURL uses the public API.
func NewGoogleBooksClient(baseURL, apiKey string, httpClient *http.Client) *GoogleBooksClient {
	if baseURL == "" {
		baseURL = defaultGoogleBooksBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &GoogleBooksClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Name returns the display name for this metadata source.
func (c *GoogleBooksClient) Name() string {
	return "googlebooks"
}

type googleBooksResponse struct {
	TotalItems int              `json:"totalItems"`
	Items      []googleBooksVol `json:"items"`
}

type googleBooksVol struct {
	VolumeInfo googleBooksVolumeInfo `json:"volumeInfo"`
}

type googleBooksVolumeInfo struct {
	Title      string                 `json:"title"`
	Authors    []string               `json:"authors"`
	ImageLinks *googleBooksImageLinks `json:"imageLinks"`
}

type googleBooksImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// volumesQuery builds q=intitle:<title>+inauthor:<author> with each term
// percent-encoded on its own so the literal '+' separator survives.
func volumesQuery(title, author string) string {
	return "intitle:" + encodeComponent(title) + "+inauthor:" + encodeComponent(author)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FindCover returns the thumbnail of the first volume matching title and author.
func (c *GoogleBooksClient) FindCover(ctx context.Context, title, author string) (string, error) {
	searchURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=1", c.baseURL, volumesQuery(title, author))
	if c.apiKey != "" {
		searchURL += "&key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build Google Books request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to search Google Books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Google Books API returned status %d", resp.StatusCode)
	}

	var gbResp googleBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&gbResp); err != nil {
		return "", fmt.Errorf("failed to decode Google Books response: %w", err)
	}

	if len(gbResp.Items) == 0 {
		return "", nil
	}
	links := gbResp.Items[0].VolumeInfo.ImageLinks
	if links == nil {
		return "", nil
	}
	return links.Thumbnail, nil
}

// TestConnection performs a cheap search to confirm the API is reachable.
func (c *GoogleBooksClient) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := c.FindCover(ctx, "The Hobbit", "Tolkien")
	return err
}
