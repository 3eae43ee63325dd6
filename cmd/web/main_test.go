package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomz197/katchnrun/internal/logging"
)

func TestHandler(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "katchnrun.wasm"), []byte("\x00asm"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(newHandler("<html>page</html>", dir, logging.Discard()))
	defer srv.Close()

	tests := []struct {
		path        string
		status      int
		contentType string
		body        string
	}{
		{path: "/", status: http.StatusOK, contentType: "text/html; charset=utf-8", body: "page"},
		{path: "/static/katchnrun.wasm", status: http.StatusOK, contentType: "application/wasm", body: "asm"},
		{path: "/static/missing.js", status: http.StatusNotFound},
		{path: "/other", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.contentType != "" && resp.Header.Get("Content-Type") != tt.contentType {
				t.Fatalf("content type = %q, want %q", resp.Header.Get("Content-Type"), tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.body) {
				t.Fatalf("body = %q, want it to contain %q", body, tt.body)
			}
		})
	}
}

func TestPagePlaceholder(t *testing.T) {
	if !strings.Contains(htmlPage, "{{.SSHHost}}") {
		t.Fatal("loader page lost its ssh host placeholder")
	}
}
