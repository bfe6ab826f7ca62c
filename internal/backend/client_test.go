// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/morganforge/compass-tui/internal/model"
)

func newTestClient(url string) *Client {
	return NewClient(url).WithMaxRetries(1).WithTimeout(5 * time.Second)
}

func TestQuery_Success(t *testing.T) {
	var gotBody QueryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/query" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		resp := QueryResponse{
			Answer: "Fever is a common symptom [Source 1].",
			Sources: []model.Source{
				{Content: "Fever...", Metadata: model.SourceMetadata{Type: "document", Source: "WHO_Fact_Sheet_Malaria.pdf"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(server.URL).WithTopK(3)
	resp, err := client.Query(context.Background(), "What are the symptoms of malaria?")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if gotBody.Query != "What are the symptoms of malaria?" {
		t.Errorf("request query = %q", gotBody.Query)
	}
	if gotBody.TopK != 3 {
		t.Errorf("request top_k = %d, want 3", gotBody.TopK)
	}
	if resp.Answer != "Fever is a common symptom [Source 1]." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Kind() != model.KindDocument {
		t.Errorf("sources = %+v", resp.Sources)
	}
}

func TestQuery_EmptyQueryRejected(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	for _, q := range []string{"", "   ", "\n\t"} {
		if _, err := client.Query(context.Background(), q); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Query(%q) error = %v, want ErrEmptyQuery", q, err)
		}
	}
}

func TestQuery_TrimsWhitespace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Query != "hello" {
			t.Errorf("query not trimmed: %q", req.Query)
		}
		json.NewEncoder(w).Encode(QueryResponse{Answer: "hi"})
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Query(context.Background(), "  hello  "); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
}

func TestQuery_NilSourcesNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"no sources here"}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Query(context.Background(), "q")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if resp.Sources == nil {
		t.Error("Sources should be normalized to an empty slice")
	}
}

func TestQuery_BackendErrorWithDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"query must not be empty"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Query(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error")
	}

	var beErr *BackendError
	if !errors.As(err, &beErr) {
		t.Fatalf("expected *BackendError, got %T: %v", err, err)
	}
	if beErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", beErr.Status)
	}
	if beErr.Message != "query must not be empty" {
		t.Errorf("message = %q", beErr.Message)
	}
}

func TestQuery_RetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(QueryResponse{Answer: "recovered"})
	}))
	defer server.Close()

	client := NewClient(server.URL).WithMaxRetries(3).WithTimeout(10 * time.Second)
	resp, err := client.Query(context.Background(), "q")
	if err != nil {
		t.Fatalf("Query failed after retry: %v", err)
	}
	if resp.Answer != "recovered" {
		t.Errorf("answer = %q", resp.Answer)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestQuery_NoRetryOn4xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL).WithMaxRetries(3).WithTimeout(10 * time.Second)
	if _, err := client.Query(context.Background(), "q"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (4xx must not retry)", calls.Load())
	}
}

func TestQuery_ConnectionRefused(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.Query(context.Background(), "q")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestCheckReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	if err := newTestClient(server.URL).CheckReady(context.Background()); err != nil {
		t.Errorf("CheckReady failed: %v", err)
	}
}

func TestCheckReady_Down(t *testing.T) {
	err := newTestClient("http://127.0.0.1:1").CheckReady(context.Background())
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestCheckReady_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := newTestClient(server.URL).CheckReady(context.Background())
	var beErr *BackendError
	if !errors.As(err, &beErr) || beErr.Status != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want *BackendError 503", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("")
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q", client.BaseURL())
	}

	client = NewClient("http://example.com/")
	if client.BaseURL() != "http://example.com" {
		t.Errorf("trailing slash not trimmed: %q", client.BaseURL())
	}
}

func TestCalculateBackoff(t *testing.T) {
	if d := calculateBackoff(1); d != time.Second {
		t.Errorf("backoff(1) = %v", d)
	}
	if d := calculateBackoff(2); d != 2*time.Second {
		t.Errorf("backoff(2) = %v", d)
	}
	if d := calculateBackoff(10); d != retryMaxDelay {
		t.Errorf("backoff(10) = %v, want cap %v", d, retryMaxDelay)
	}
}
