package network

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Downloader fetches remote network archives.
type Downloader struct {
	client *http.Client
	dir    string // Directory to store downloaded files
	logger *slog.Logger
}

// NewDownloader creates a Downloader storing archives under dir.
func NewDownloader(dir string, logger *slog.Logger) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: 2 * time.Minute},
		dir:    dir,
		logger: logger,
	}
}

// IsRemote reports whether src should be downloaded rather than opened.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Download fetches the zip at url and saves it to a temp file.
// The caller removes the returned file.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	d.logger.Info("downloading network archive", "url", url)
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp(d.dir, "network-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer tmpFile.Close()

	written, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	d.logger.Info("network archive downloaded",
		"path", filepath.Base(tmpFile.Name()),
		"size_kb", fmt.Sprintf("%.1f", float64(written)/1024),
	)
	return tmpFile.Name(), nil
}
