// Package site provides the static-file responder for a served root
// directory, plus directory listing and index-file discovery for the
// launcher surface.
package site

import (
	"net/http"
	"path"
	"strings"
)

// Handler returns an HTTP handler serving static files rooted at root.
//
// Only GET and HEAD are accepted. Any request path that would escape the
// root after cleaning is answered 404 without touching the filesystem, so
// parent-directory content can never leak. Everything else is delegated to
// the standard file server: 200 with the file bytes, 404 for missing
// files, 403 for unreadable ones.
func Handler(root string) http.Handler {
	fileServer := http.FileServer(http.Dir(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		if !withinRoot(r.URL.Path) {
			http.NotFound(w, r)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

// withinRoot reports whether a request path stays inside the served root
// once cleaned. Backslashes are treated as separators so Windows-style
// traversal ("..\..") is caught too.
func withinRoot(requestPath string) bool {
	if strings.ContainsRune(requestPath, '\x00') {
		return false
	}

	p := strings.ReplaceAll(requestPath, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	for _, seg := range strings.Split(cleaned, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}
