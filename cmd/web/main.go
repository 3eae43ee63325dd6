package main

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/katchnrun/internal/config"
	"github.com/tomz197/katchnrun/internal/logging"
)

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = "8080"
	defaultStaticDir = "web"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, config.GetEnv("KATCH_LOG_LEVEL", "info"), "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	staticDir := config.GetEnv("WEB_STATIC_DIR", defaultStaticDir)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	if _, err := os.Stat(staticDir); err != nil {
		logger.Warn("static dir missing, the game will not load", "dir", staticDir, "err", err)
	}

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info("Starting web server", "url", "http://"+addr, "static", staticDir)
	if err := http.ListenAndServe(addr, newHandler(page, staticDir, logger)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the loader page at / and the wasm build from staticDir.
func newHandler(page, staticDir string, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	static := http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir)))
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		logger.Debug("static", "path", r.URL.Path)
		static.ServeHTTP(w, r)
	}))
	return mux
}
