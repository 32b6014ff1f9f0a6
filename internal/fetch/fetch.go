// Package fetch retrieves pages over HTTP with bounded time and size.
package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/internalerr"
)

// cappedBody limits reads to the size cap while keeping Close wired to the
// gzip reader and the underlying response body, so the connection is
// released even when the page exceeds the cap.
type cappedBody struct {
	io.Reader
	gzip io.Closer
	body io.ReadCloser
}

func (b *cappedBody) Close() error {
	// drain the capped remainder so the connection can be reused
	io.Copy(io.Discard, b.Reader)
	if b.gzip != nil {
		b.gzip.Close()
	}
	return b.body.Close()
}

// Client is a bounded HTTP fetcher for HTML pages.
type Client struct {
	client    *http.Client
	sizeCap   int64
	userAgent string
}

// NewClient builds a fetcher with the given request timeout, dial timeout,
// and response size cap in bytes.
func NewClient(timeout, dialTimeout time.Duration, sizeCap int64) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		sizeCap:   sizeCap,
		userAgent: "page-keyword-analyzer/1.0",
	}
}

// Fetch retrieves rawURL and returns the body reader, the final URL after
// redirects, and the content type. Non-HTML responses are rejected.
func (c *Client) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, "", "", fmt.Errorf("%w: url %q", internalerr.ErrInvalidInput, rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, "", "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	var gz io.Closer
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, "", "", err
		}
		body = zr
		gz = zr
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "" && !strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		if gz != nil {
			gz.Close()
		}
		resp.Body.Close()
		return nil, "", "", errors.New("non-html content")
	}

	finalURL := resp.Request.URL.String()
	return &cappedBody{
		Reader: io.LimitReader(body, c.sizeCap),
		gzip:   gz,
		body:   resp.Body,
	}, finalURL, contentType, nil
}
