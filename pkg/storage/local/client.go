package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
)

var filenameSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Client persists uploaded files on the local disk under a base directory.
// Stored paths are relative to the base dir so they can be served statically.
type Client struct {
	baseDir  string
	maxBytes int64
}

// NewClient prepares the uploads directory and returns a Client.
func NewClient(cfg config.UploadsConfig) (*Client, error) {
	if cfg.BaseDir == "" {
		return nil, errors.New("uploads base dir is required")
	}
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", cfg.BaseDir, err)
	}
	return &Client{
		baseDir:  cfg.BaseDir,
		maxBytes: cfg.MaxUploadMB * 1024 * 1024,
	}, nil
}

// BaseDir returns the directory files are stored under.
func (c *Client) BaseDir() string {
	return c.baseDir
}

// MaxBytes returns the configured per-file upload cap.
func (c *Client) MaxBytes() int64 {
	return c.maxBytes
}

// Save writes the reader's content into subdir and returns the stored relative path.
// Filenames are prefixed with a timestamp to avoid collisions.
func (c *Client) Save(ctx context.Context, subdir, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename == "" {
		return "", errors.New("filename is required")
	}

	safe := filenameSanitizeRe.ReplaceAllString(filepath.Base(filename), "_")
	stored := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), safe)

	dir := c.baseDir
	if subdir != "" {
		dir = filepath.Join(c.baseDir, filepath.Clean(subdir))
		if !strings.HasPrefix(dir, c.baseDir) {
			return "", fmt.Errorf("invalid subdir %q", subdir)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %q: %w", dir, err)
		}
	}

	fullpath := filepath.Join(dir, stored)
	f, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", fullpath, err)
	}
	defer f.Close()

	src := r
	if c.maxBytes > 0 {
		src = io.LimitReader(r, c.maxBytes+1)
	}
	written, err := io.Copy(f, src)
	if err != nil {
		_ = os.Remove(fullpath)
		return "", fmt.Errorf("write %q: %w", fullpath, err)
	}
	if c.maxBytes > 0 && written > c.maxBytes {
		_ = os.Remove(fullpath)
		return "", fmt.Errorf("file exceeds %d bytes", c.maxBytes)
	}

	rel, err := filepath.Rel(c.baseDir, fullpath)
	if err != nil {
		return "", fmt.Errorf("rel path: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// Delete removes a previously stored file by its relative path.
// Missing files are not an error.
func (c *Client) Delete(ctx context.Context, relPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if relPath == "" {
		return nil
	}

	full := filepath.Join(c.baseDir, filepath.Clean(relPath))
	if !strings.HasPrefix(full, c.baseDir) {
		return fmt.Errorf("invalid path %q", relPath)
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", full, err)
	}
	return nil
}
