// Package source fetches the discography payload from the sheet endpoint and
// keeps the most recently built database, backed by the snapshot cache.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrSourceNotConfigured is returned when no source URL is set.
var ErrSourceNotConfigured = errors.New("data source url is not configured")

// maxErrorBody bounds how much of a failed response is read for the error.
const maxErrorBody = 64 << 10

// FetchError reports a non-2xx answer from the sheet endpoint.
type FetchError struct {
	StatusCode int
	Status     string // e.g. "503 Service Unavailable"
	Title      string // <title> of an HTML error page, if any
}

func (e *FetchError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("failed to fetch data: %s (%s)", e.Status, e.Title)
	}
	return fmt.Sprintf("failed to fetch data: %s", e.Status)
}

// Fetcher retrieves the raw payload bytes.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type httpFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher creates a Fetcher performing a GET on url.
func NewHTTPFetcher(url string, timeout time.Duration) Fetcher {
	return &httpFetcher{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *httpFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if strings.TrimSpace(f.url) == "" {
		return nil, ErrSourceNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newFetchError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// newFetchError builds a FetchError, lifting the page title out of HTML
// bodies. Apps Script answers errors with an HTML page.
func newFetchError(resp *http.Response) *FetchError {
	fe := &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	if fe.Status == "" {
		fe.Status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if !isHTML(resp.Header.Get("Content-Type")) {
		return fe
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fe
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fe
	}
	fe.Title = strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
	return fe
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/html"
}
