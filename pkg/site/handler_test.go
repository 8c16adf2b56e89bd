package site

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>hello</h1>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "app.js"), []byte("console.log(1)"), 0o600))

	// A sibling file outside the root that traversal must never reach.
	parent := filepath.Dir(root)
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("secret"), 0o600))
	return root
}

func TestHandlerServesIndex(t *testing.T) {
	srv := httptest.NewServer(Handler(newRoot(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	require.Contains(t, string(body[:n]), "hello")
}

func TestHandlerServesNestedFile(t *testing.T) {
	srv := httptest.NewServer(Handler(newRoot(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/assets/app.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandlerMissingFile(t *testing.T) {
	srv := httptest.NewServer(Handler(newRoot(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope.html")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandlerRejectsTraversal(t *testing.T) {
	srv := httptest.NewServer(Handler(newRoot(t)))
	defer srv.Close()

	// Send the raw path without client-side cleaning.
	for _, p := range []string{
		"/../secret.txt",
		"/../../etc/passwd",
		"/assets/../../secret.txt",
		"/..%2fsecret.txt",
	} {
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		req.URL.Opaque = p

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.NotEqual(t, http.StatusOK, resp.StatusCode, "path %s must not be served", p)
		resp.Body.Close()
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(Handler(newRoot(t)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/", "text/plain", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
}

func TestHandlerHead(t *testing.T) {
	srv := httptest.NewServer(Handler(newRoot(t)))
	defer srv.Close()

	resp, err := http.Head(srv.URL + "/index.html")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWithinRoot(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/index.html", true},
		{"/assets/app.js", true},
		{"/a/b/../c", true},
		{"/..", false},
		{"/../etc/passwd", false},
		{"/a/../../etc/passwd", false},
		{"..\\..\\windows", false},
		{"/has\x00null", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, withinRoot(tt.path), "path %q", tt.path)
	}
}
