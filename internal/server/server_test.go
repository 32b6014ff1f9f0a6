package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/afajohn/page-keyword-analyzer-sub000/internal/fetch"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/report"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/store"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/store/sqlite"
	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic"
)

func testServer(t *testing.T, st store.Store) *Server {
	t.Helper()
	return New(semantic.NewDefault(), fetch.NewClient(5*time.Second, 2*time.Second, 1<<20), st, nil)
}

func testStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(t, testServer(t, nil), http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "ok" {
		t.Errorf("body = %v", resp)
	}
}

func TestAnalyzeTextReturnsReport(t *testing.T) {
	payload := `{
		"content": "SEO optimization improves visibility. SEO optimization needs research.",
		"url_keywords": ["seo", "optimization"],
		"headings": [{"tag": "h1", "text": "Complete Guide to SEO Optimization"}]
	}`

	w := doJSON(t, testServer(t, nil), http.MethodPost, "/analyze/text", payload)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var rep report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.ID == "" {
		t.Error("Expected report ID")
	}
	if rep.Analysis.CoreTopic.Topic != "seo optimization" {
		t.Errorf("Topic = %q", rep.Analysis.CoreTopic.Topic)
	}
}

func TestAnalyzeTextRejectsMalformedPayload(t *testing.T) {
	w := doJSON(t, testServer(t, nil), http.MethodPost, "/analyze/text", "{not json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAnalyzeRejectsMissingURL(t *testing.T) {
	w := doJSON(t, testServer(t, nil), http.MethodPost, "/analyze", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAnalyzeFetchesAndPersists(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><head><title>Coffee Brewing Guide</title></head>
			<body><h1>Coffee Brewing Guide</h1><p>Coffee brewing rewards patience. Coffee brewing needs fresh beans.</p></body></html>`)
	}))
	defer origin.Close()

	st := testStore(t)
	srv := testServer(t, st)

	w := doJSON(t, srv, http.MethodPost, "/analyze", `{"url":"`+origin.URL+`/coffee-brewing"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var rep report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}

	stored, found, err := st.GetReport(context.Background(), rep.ID)
	if err != nil || !found {
		t.Fatalf("stored report: found=%v err=%v", found, err)
	}
	if stored.URL != rep.URL {
		t.Errorf("stored URL = %q, want %q", stored.URL, rep.URL)
	}
}

func TestAnalyzeFetchFailure(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer origin.Close()

	w := doJSON(t, testServer(t, nil), http.MethodPost, "/analyze", `{"url":"`+origin.URL+`"}`)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestListAndGetAnalyses(t *testing.T) {
	st := testStore(t)
	srv := testServer(t, st)

	w := doJSON(t, srv, http.MethodPost, "/analyze/text", `{"content":"Gardening tips for spring. Gardening needs patience."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d", w.Code)
	}
	var rep report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, srv, http.MethodGet, "/analyses", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []store.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != rep.ID {
		t.Errorf("list = %+v", list)
	}

	w = doJSON(t, srv, http.MethodGet, "/analyses/"+rep.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/analyses/unknown-id", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing id status = %d, want 404", w.Code)
	}
}

func TestListWithoutStore(t *testing.T) {
	w := doJSON(t, testServer(t, nil), http.MethodGet, "/analyses", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when history is disabled", w.Code)
	}
}

func TestExportFormats(t *testing.T) {
	st := testStore(t)
	srv := testServer(t, st)

	w := doJSON(t, srv, http.MethodPost, "/analyze/text", `{"content":"Baking bread at home. Baking needs time."}`)
	var rep report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, srv, http.MethodGet, "/analyses/"+rep.ID+"/export?format=csv", "")
	if w.Code != http.StatusOK {
		t.Fatalf("csv status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "class,term,confidence") {
		t.Errorf("csv body = %q", w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/analyses/"+rep.ID+"/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("markdown status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "# Keyword Analysis") {
		t.Errorf("markdown body = %q", w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/analyses/"+rep.ID+"/export?format=xml", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	w := doJSON(t, testServer(t, nil), http.MethodGet, "/metrics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "analyzer_duration_seconds") {
		t.Error("Expected analyzer metrics in exposition")
	}
}
