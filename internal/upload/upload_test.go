package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "http://localhost:8081/slips/")

	url, err := store.Store(context.Background(), "slip.png", "image/png", strings.NewReader("fake png bytes"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8081/slips/") {
		t.Errorf("url: got %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url should keep the png extension, got %q", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Errorf("file content: got %q", data)
	}
}

func TestLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "slips")
	store := NewLocalStore(dir, "/slips")

	if _, err := store.Store(context.Background(), "slip.jpg", "image/jpeg", strings.NewReader("x")); err != nil {
		t.Fatalf("store: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}
}

func TestRemoteStore(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotBody, _ = io.ReadAll(file)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://img.example.com/abc.jpg"})
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "test-key")
	url, err := store.Store(context.Background(), "slip.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if url != "https://img.example.com/abc.jpg" {
		t.Errorf("url: got %q", url)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header: got %q", gotAuth)
	}
	if !bytes.Equal(gotBody, []byte("jpeg bytes")) {
		t.Errorf("uploaded body: got %q", gotBody)
	}
}

func TestRemoteStoreUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "test-key")
	if _, err := store.Store(context.Background(), "slip.jpg", "image/jpeg", strings.NewReader("x")); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestRemoteStoreMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "test-key")
	if _, err := store.Store(context.Background(), "slip.jpg", "image/jpeg", strings.NewReader("x")); err == nil {
		t.Fatal("expected error when response has no secure_url")
	}
}

type stubStore struct {
	url  string
	err  error
	data []byte
}

func (s *stubStore) Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	s.data, _ = io.ReadAll(r)
	return s.url, s.err
}

func TestFallbackStoreUsesPrimary(t *testing.T) {
	primary := &stubStore{url: "https://img.example.com/a.png"}
	secondary := &stubStore{url: "/slips/a.png"}
	store := NewFallbackStore(primary, secondary)

	url, err := store.Store(context.Background(), "slip.png", "image/png", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if url != primary.url {
		t.Errorf("url: got %q, want primary", url)
	}
	if secondary.data != nil {
		t.Error("secondary must not be called when primary succeeds")
	}
}

func TestFallbackStoreFallsBack(t *testing.T) {
	primary := &stubStore{err: errors.New("host down")}
	secondary := &stubStore{url: "/slips/a.png"}
	store := NewFallbackStore(primary, secondary)

	url, err := store.Store(context.Background(), "slip.png", "image/png", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if url != secondary.url {
		t.Errorf("url: got %q, want secondary", url)
	}
	if !bytes.Equal(secondary.data, []byte("bytes")) {
		t.Errorf("secondary must receive the full image, got %q", secondary.data)
	}
}
