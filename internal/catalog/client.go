package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/booknest/booknest-be/internal/apperror"
	"github.com/tidwall/gjson"
)

const maxSearchResults = 40

// LookupProvider defines the interface for the external book catalog.
type LookupProvider interface {
	Search(ctx context.Context, query string) ([]byte, error)
	GetVolume(ctx context.Context, id string) (Volume, error)
}

// Volume is the metadata subset the app cares about for a single book.
type Volume struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	AverageRating float64  `json:"averageRating"`
	Thumbnail     string   `json:"thumbnail"`
	Description   string   `json:"description"`
}

// Client talks to the external book catalog (Google Books volumes API).
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Search runs a free-text query and returns the catalog's raw JSON body.
// The response shape is passed through to the frontend untouched. Failures
// are terminal; there is no retry.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d", c.baseURL, url.QueryEscape(query), maxSearchResults)
	return c.get(ctx, endpoint)
}

// GetVolume looks up a single volume by its catalog id and plucks the
// fields the detail view needs.
func (c *Client) GetVolume(ctx context.Context, id string) (Volume, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(id)))
	if err != nil {
		return Volume{}, err
	}

	info := gjson.GetBytes(body, "volumeInfo")
	if !info.Exists() {
		return Volume{}, apperror.NewNotFound("Volume not found")
	}

	vol := Volume{
		ID:            gjson.GetBytes(body, "id").String(),
		Title:         info.Get("title").String(),
		AverageRating: info.Get("averageRating").Float(),
		Thumbnail:     info.Get("imageLinks.thumbnail").String(),
		Description:   info.Get("description").String(),
	}
	for _, a := range info.Get("authors").Array() {
		vol.Authors = append(vol.Authors, a.String())
	}
	return vol, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.NewInternal("failed to build catalog request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.NewUpstream("Error fetching books", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperror.NewNotFound("Volume not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewUpstream("Error fetching books", fmt.Errorf("catalog returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewUpstream("Error fetching books", err)
	}
	return body, nil
}
