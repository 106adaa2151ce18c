// Package upload stores payment slip images and returns public URLs.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"resty.dev/v3"
)

// Storer saves a slip image and returns the public URL it is served from.
type Storer interface {
	Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// RemoteStore uploads slips to an external image host over HTTP.
type RemoteStore struct {
	client *resty.Client
	url    string
	apiKey string
}

func NewRemoteStore(uploadURL, apiKey string) *RemoteStore {
	return &RemoteStore{
		client: resty.New().SetTimeout(15 * time.Second),
		url:    uploadURL,
		apiKey: apiKey,
	}
}

func (s *RemoteStore) Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	var out struct {
		SecureURL string `json:"secure_url"`
	}
	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetFileReader("file", filename, r).
		SetResult(&out).
		Post(s.url)
	if err != nil {
		return "", fmt.Errorf("upload slip: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("upload slip: upstream returned %s", res.Status())
	}
	if out.SecureURL == "" {
		return "", errors.New("upload slip: response missing secure_url")
	}
	return out.SecureURL, nil
}

// LocalStore writes slips to a directory on disk. Files are served back
// under publicURL by the static file route.
type LocalStore struct {
	dir       string
	publicURL string
}

func NewLocalStore(dir, publicURL string) *LocalStore {
	return &LocalStore{dir: dir, publicURL: publicURL}
}

func (s *LocalStore) Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create slip dir: %w", err)
	}
	name := uuid.NewString() + extensionFor(contentType)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create slip file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write slip file: %w", err)
	}
	return strings.TrimRight(s.publicURL, "/") + "/" + name, nil
}

// FallbackStore tries the primary store and falls back to the secondary
// when the primary fails, so an image host outage does not block orders.
type FallbackStore struct {
	primary   Storer
	secondary Storer
}

func NewFallbackStore(primary, secondary Storer) *FallbackStore {
	return &FallbackStore{primary: primary, secondary: secondary}
}

func (s *FallbackStore) Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	// Buffer the image so it can be replayed on fallback.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read slip: %w", err)
	}
	url, err := s.primary.Store(ctx, filename, contentType, bytes.NewReader(data))
	if err == nil {
		return url, nil
	}
	log.Printf("ERROR: remote slip upload failed, storing locally: %v", err)
	return s.secondary.Store(ctx, filename, contentType, bytes.NewReader(data))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
