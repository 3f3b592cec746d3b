package testutil

import (
	"io"
	"net/http"
	"path"
	"testing"

	"github.com/spf13/afero"
)

// CreateTestRoot creates an in-memory root directory holding files. Keys are
// slash paths relative to the root.
func CreateTestRoot(files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	for name, content := range files {
		p := path.Join("/", name)
		if err := fs.MkdirAll(path.Dir(p), 0755); err != nil {
			panic(err)
		}
		if err := afero.WriteFile(fs, p, []byte(content), 0644); err != nil {
			panic(err)
		}
	}
	return fs
}

// ReadBody reads and closes a response body
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return string(body)
}

// AssertStatus checks the response status code
func AssertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Errorf("status = %d, want %d", resp.StatusCode, want)
	}
}
