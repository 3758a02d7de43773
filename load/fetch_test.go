/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPFetcherSuccess(t *testing.T) {
	body := `{"title": "Brand", "items": [{"name": "Primary", "value": "#FF0000"}]}`
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(DefaultMaxSize)
	content, err := f.Fetch(context.Background(), srv.URL+"/brand.json")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(content) != body {
		t.Errorf("Fetch() = %q, want %q", string(content), body)
	}
	if !strings.HasPrefix(gotUA, "mishtanim/") {
		t.Errorf("User-Agent = %q, want mishtanim/ prefix", gotUA)
	}
}

func TestHTTPFetcherTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(DefaultMaxSize)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL+"/slow.json")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") && !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected timeout error, got: %v", err)
	}
}

func TestHTTPFetcherMaxSizeExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("{", 4096)))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(1024)
	_, err := f.Fetch(context.Background(), srv.URL+"/huge.json")
	if err == nil {
		t.Fatal("expected max size error")
	}
	if !strings.Contains(err.Error(), "exceeds maximum size") {
		t.Errorf("expected max size error, got: %v", err)
	}
}

func TestHTTPFetcherErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(status), status)
		}))

		f := NewHTTPFetcher(DefaultMaxSize)
		_, err := f.Fetch(context.Background(), srv.URL+"/missing.json")
		srv.Close()
		if err == nil {
			t.Fatalf("expected error for status %d", status)
		}
		if !strings.Contains(err.Error(), http.StatusText(status)) {
			t.Errorf("status %d: expected %q in error, got: %v", status, http.StatusText(status), err)
		}
	}
}
