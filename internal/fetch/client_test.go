package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "assetloader-test" {
			t.Errorf("User-Agent = %q, want %q", ua, "assetloader-test")
		}
		w.Write([]byte("unit payload"))
	}))
	defer server.Close()

	client := NewClient("assetloader-test")
	data, err := client.Fetch(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "unit payload" {
		t.Errorf("got %q, want %q", data, "unit payload")
	}
}

func TestClient_FetchReportsProgress(t *testing.T) {
	payload := make([]byte, 64*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Without an explicit length the response is chunked and the
		// reported total is -1.
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	}))
	defer server.Close()

	var lastWritten, lastTotal int64
	client := NewClient("assetloader-test")
	data, err := client.Fetch(context.Background(), server.URL, func(written, total int64) {
		if written < lastWritten {
			t.Errorf("written went backwards: %d -> %d", lastWritten, written)
		}
		lastWritten = written
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data) != len(payload) {
		t.Errorf("got %d bytes, want %d", len(data), len(payload))
	}
	if lastWritten != int64(len(payload)) {
		t.Errorf("final written = %d, want %d", lastWritten, len(payload))
	}
	if lastTotal != int64(len(payload)) {
		t.Errorf("total = %d, want %d", lastTotal, len(payload))
	}
}

func TestClient_FetchUnknownLength(t *testing.T) {
	payload := make([]byte, 64*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No Content-Length: the response streams chunked.
		w.Write(payload)
	}))
	defer server.Close()

	var lastWritten, lastTotal int64
	client := NewClient("assetloader-test")
	data, err := client.Fetch(context.Background(), server.URL, func(written, total int64) {
		lastWritten = written
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data) != len(payload) {
		t.Errorf("got %d bytes, want %d", len(data), len(payload))
	}
	if lastWritten != int64(len(payload)) {
		t.Errorf("final written = %d, want %d", lastWritten, len(payload))
	}
	if lastTotal != -1 {
		t.Errorf("total = %d, want -1 for an unsized response", lastTotal)
	}
}

func TestClient_FetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient("assetloader-test")
	if _, err := client.Fetch(context.Background(), server.URL, nil); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestClient_FetchHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient("assetloader-test")
	start := time.Now()
	_, err := client.Fetch(ctx, server.URL, nil)
	if err == nil {
		t.Fatal("expected error from expired context")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("fetch took %v, should abort near the 50ms deadline", elapsed)
	}
}

func TestNewBaseResolvers(t *testing.T) {
	manifestURL, unitURL := NewBaseResolvers("https://cdn.example.com/content/", "manifest.json")

	url, err := manifestURL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/content/manifest.json" {
		t.Errorf("manifest URL = %q", url)
	}

	url, err = unitURL("textures")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn.example.com/content/textures" {
		t.Errorf("unit URL = %q", url)
	}
}
