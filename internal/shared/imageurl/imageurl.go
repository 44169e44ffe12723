// Package imageurl derives public URLs for stored images from a configured
// base upload URL.
package imageurl

import (
	"fmt"
	"net/url"
)

// Builder joins stored image filenames onto the upload base URL.
type Builder struct {
	base *url.URL
}

// NewBuilder parses baseURL, which must be absolute (scheme and host).
func NewBuilder(baseURL string) (*Builder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upload base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upload base URL must be absolute: %q", baseURL)
	}
	return &Builder{base: u}, nil
}

// URL returns the public URL for filename, or "" when filename is empty.
func (b *Builder) URL(filename string) string {
	if filename == "" {
		return ""
	}
	return b.base.JoinPath(filename).String()
}
