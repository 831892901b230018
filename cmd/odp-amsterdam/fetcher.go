package main

import (
	"net/http"
	"path/filepath"
	"strings"
)

// newHTTPClient returns an HTTP client that also serves file:// URLs from disk,
// so saved feed snapshots can be replayed through the normal client path.
// This is CLI-specific logic and is not part of the core library.
func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return &http.Client{Transport: transport}
}

// feedURL turns a local path into a file:// URL and leaves http(s) URLs untouched.
// Empty input returns "" so the configured endpoint is kept.
func feedURL(urlOrPath string) (string, error) {
	if urlOrPath == "" {
		return "", nil
	}
	if strings.HasPrefix(urlOrPath, "http://") || strings.HasPrefix(urlOrPath, "https://") || strings.HasPrefix(urlOrPath, "file://") {
		return urlOrPath, nil
	}
	abs, err := filepath.Abs(urlOrPath)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}
