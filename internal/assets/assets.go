// Package assets inlines public files as data URIs so rendered cards carry
// their background images with them.
package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/monakit/monakit/internal/theme"
)

// ErrNotFound is returned when no file exists for a key.
var ErrNotFound = theme.ErrAssetNotFound

// Inliner resolves asset keys against a file system rooted at the public
// directory.
type Inliner struct {
	fsys fs.FS
}

var _ theme.AssetResolver = (*Inliner)(nil)

// NewInliner creates an inliner over fsys.
func NewInliner(fsys fs.FS) *Inliner {
	return &Inliner{fsys: fsys}
}

// Resolve reads the file at key and returns it as a base64 data URI.
func (i *Inliner) Resolve(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := path.Clean(strings.TrimPrefix(key, "/"))
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("invalid asset path %q", key)
	}

	data, err := fs.ReadFile(i.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("failed to read asset: %w", err)
	}

	return "data:" + contentType(name, data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func contentType(name string, data []byte) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		t, _, _ = strings.Cut(t, ";")
		return t
	}
	t, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return t
}
