// Package fsstore keeps scanned images on the local filesystem
package fsstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	perr "producescan/internal/platform/errors"
)

// Store writes assets flat into one directory
type Store struct {
	dir  string
	base string
}

// New creates dir when missing
// base prefixes returned locations, empty means the file path itself
func New(dir, base string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, perr.InvalidArgf("asset directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "create asset directory %s", dir)
	}
	return &Store{dir: dir, base: strings.TrimRight(base, "/")}, nil
}

// Put writes body under key through a temp file so readers never see a partial image
func (s *Store) Put(ctx context.Context, key string, body []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkKey(key); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".put-*")
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "stage asset %s", key)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "write asset %s", key)
	}
	if err := tmp.Close(); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "close asset %s", key)
	}
	dst := filepath.Join(s.dir, key)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "publish asset %s", key)
	}

	if s.base != "" {
		return s.base + "/" + key, nil
	}
	return dst, nil
}

// checkKey accepts flat names only
func checkKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return perr.WithField(perr.InvalidArgf("asset key %q is not a flat file name", key), "key")
	}
	return nil
}
