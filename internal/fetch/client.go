package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// ProgressFunc receives fractional download progress as bytes arrive.
// total is the expected byte count, or -1 when the server does not report
// a Content-Length.
type ProgressFunc func(written, total int64)

// Fetcher fetches the content at an address.
//
// Implementations must honor context cancellation (the loader applies the
// per-attempt timeout through the context) and should call onProgress as
// bytes arrive. onProgress may be nil.
type Fetcher interface {
	Fetch(ctx context.Context, url string, onProgress ProgressFunc) ([]byte, error)
}

// Client is the HTTP implementation of Fetcher.
//
// Example usage:
//
//	client := NewClient("assetloader")
//	data, err := client.Fetch(ctx, unitURL, func(written, total int64) {
//	    if total > 0 {
//	        fmt.Printf("%.1f%%\n", float64(written)/float64(total)*100)
//	    }
//	})
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// The client carries no request timeout of its own: the loader wraps every
// attempt in a context deadline, and a fetch aborts when that context is
// cancelled.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{},
		userAgent:  userAgent,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor downloads by providing an OnUpdate callback that
// receives the current bytes written and total expected bytes.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: &buf,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate ProgressFunc
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Fetch performs a GET request and returns the response body as bytes,
// reporting progress through onProgress as the body streams in.
//
// Returns an error if:
//   - The request fails or the context is cancelled
//   - The response status is not 200 OK
//   - Reading the body fails
func (c *Client) Fetch(ctx context.Context, url string, onProgress ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var buf bytes.Buffer
	var writer io.Writer = &buf
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   &buf,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
