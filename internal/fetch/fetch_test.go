package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic/internalerr"
)

func testClient() *Client {
	return NewClient(5*time.Second, 2*time.Second, 1<<20)
}

func TestFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, "<html><body>hello</body></html>")
	}))
	defer srv.Close()

	body, finalURL, contentType, err := testClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("Body = %q", data)
	}
	if finalURL != srv.URL {
		t.Errorf("finalURL = %q, want %q", finalURL, srv.URL)
	}
	if !strings.Contains(contentType, "text/html") {
		t.Errorf("contentType = %q", contentType)
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	var target string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, "/final", http.StatusMovedPermanently)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html></html>")
	}))
	defer srv.Close()
	target = srv.URL + "/final"

	body, finalURL, _, err := testClient().Fetch(context.Background(), srv.URL+"/start")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	body.Close()

	if finalURL != target {
		t.Errorf("finalURL = %q, want %q", finalURL, target)
	}
}

func TestFetchGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		io.WriteString(gz, "<html><body>compressed page</body></html>")
		gz.Close()
	}))
	defer srv.Close()

	body, _, _, err := testClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	if !strings.Contains(string(data), "compressed page") {
		t.Errorf("Body = %q, want decompressed text", data)
	}
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestBodyCloseReachesResponse(t *testing.T) {
	raw := &closeRecorder{Reader: strings.NewReader("payload")}
	gz := &closeRecorder{}
	b := &cappedBody{Reader: io.LimitReader(raw, 3), gzip: gz, body: raw}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !raw.closed {
		t.Error("Close must close the response body")
	}
	if !gz.closed {
		t.Error("Close must close the gzip reader")
	}

	raw = &closeRecorder{Reader: strings.NewReader("payload")}
	b = &cappedBody{Reader: io.LimitReader(raw, 3), body: raw}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !raw.closed {
		t.Error("Close must close the response body when not gzipped")
	}
}

func TestFetchCloseReleasesConnections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, strings.Repeat("x", 256<<10))
	}))
	defer srv.Close()

	before := runtime.NumGoroutine()
	c := NewClient(5*time.Second, 2*time.Second, 10)
	for i := 0; i < 20; i++ {
		body, _, _, err := c.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Fetch #%d: %v", i, err)
		}
		if _, err := io.ReadAll(body); err != nil {
			t.Fatal(err)
		}
		if err := body.Close(); err != nil {
			t.Fatal(err)
		}
	}

	// transport goroutines exit shortly after Close
	deadline := time.Now().Add(2 * time.Second)
	after := runtime.NumGoroutine()
	for after > before+8 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
		after = runtime.NumGoroutine()
	}
	if after > before+8 {
		t.Errorf("Goroutines grew from %d to %d, connections not released on Close", before, after)
	}
}

func TestFetchRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "{}")
	}))
	defer srv.Close()

	if _, _, _, err := testClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Error("Expected error for non-html content")
	}
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, _, _, err := testClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestFetchRejectsInvalidURL(t *testing.T) {
	for _, bad := range []string{"", "not-a-url", "/relative/only"} {
		_, _, _, err := testClient().Fetch(context.Background(), bad)
		if !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("Fetch(%q) err = %v, want ErrInvalidInput", bad, err)
		}
	}
}

func TestFetchCapsBodySize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, strings.Repeat("x", 4096))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 2*time.Second, 100)
	body, _, _, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer body.Close()

	data, _ := io.ReadAll(body)
	if len(data) != 100 {
		t.Errorf("Read %d bytes, want capped 100", len(data))
	}
}
