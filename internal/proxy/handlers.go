package proxy

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript",
	".json": "application/json",
}

// handleAPI forwards the request path and query to the upstream registry and
// relays status, content type and body.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimRight(s.config.Upstream, "/") + r.URL.RequestURI()

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		writeText(w, http.StatusBadGateway, "Error: "+err.Error())
		return
	}
	req.Header.Set("Accept", "application/json")
	if id := r.Header.Get(RequestIDHeader); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	s.logger.Debug("fetching", "url", target)
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("upstream request failed", "url", target, "err", err)
		writeText(w, http.StatusBadGateway, "Error: "+err.Error())
		return
	}
	defer resp.Body.Close()

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/json"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.logger.Error("relay upstream body", "url", target, "err", err)
	}
}

// handleStatic serves files below StaticDir. "/" maps to index.html.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeText(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name, ok := cleanStaticPath(r.URL.Path)
	if !ok {
		writeText(w, http.StatusNotFound, "File not found")
		return
	}

	root := s.config.StaticDir
	if root == "" {
		root = "."
	}
	full := filepath.Join(root, filepath.FromSlash(name))

	data, err := os.ReadFile(full)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("read static file", "path", full, "err", err)
		}
		writeText(w, http.StatusNotFound, "File not found")
		return
	}

	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(data)
	}
}

// cleanStaticPath maps a URL path to a slash-separated path relative to the
// static root. Paths that would leave the root are rejected.
func cleanStaticPath(p string) (string, bool) {
	if p == "" || p == "/" {
		return "index.html", true
	}
	if strings.Contains(p, "\\") {
		return "", false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", false
		}
	}
	clean := strings.TrimPrefix(path.Clean("/"+p), "/")
	if clean == "" {
		return "index.html", true
	}
	if !fs.ValidPath(clean) {
		return "", false
	}
	return clean, true
}
