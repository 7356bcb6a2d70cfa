//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type fakeUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// FakeGitHub serves the user search endpoint from a fixed set of logins
type FakeGitHub struct {
	*httptest.Server

	mu      sync.Mutex
	logins  []string
	queries []string
	failing bool
}

// NewFakeGitHub starts a search server that matches logins by prefix
func NewFakeGitHub(t *testing.T, logins ...string) *FakeGitHub {
	t.Helper()
	f := &FakeGitHub{logins: logins}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeGitHub) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	f.mu.Lock()
	f.queries = append(f.queries, q)
	failing := f.failing
	f.mu.Unlock()

	if failing {
		http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
		return
	}

	items := []fakeUser{}
	for i, login := range f.logins {
		if strings.HasPrefix(login, q) {
			items = append(items, fakeUser{
				ID:        int64(i + 1),
				Login:     login,
				AvatarURL: "https://avatars.example/" + login,
				HTMLURL:   "https://github.com/" + login,
			})
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"total_count": len(items), "items": items})
}

// SetFailing makes every later request fail
func (f *FakeGitHub) SetFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

// Queries returns the q parameter of every request so far
func (f *FakeGitHub) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// WriteConfig points lookout at endpoint and returns the config path
func (tf *TUITestFramework) WriteConfig(endpoint string) string {
	tf.t.Helper()
	path := filepath.Join(tf.workspace, "lookout.toml")
	body := fmt.Sprintf(`[search]
endpoint = %q
per_page = 20
debounce_ms = 100
min_query_length = 2
timeout_seconds = 5
requests_per_minute = 0
burst = 0

[cache]
enabled = false
size = 1
ttl_seconds = 1

[ui]
alt_screen = true
mouse = true

[log]
file = %q
level = "debug"
`, endpoint, filepath.Join(tf.workspace, "lookout.log"))

	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		tf.t.Fatalf("writing config: %v", err)
	}
	return path
}
