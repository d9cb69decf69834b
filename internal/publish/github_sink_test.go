package publish

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/config"
	"github.com/techskillsthatpay/content-server/internal/i18n"
	"github.com/techskillsthatpay/content-server/internal/models"
)

type fakeGithub struct {
	mu          sync.Mutex
	blobs       int
	refUpdated  bool
	branch      string
	prCreated   bool
	failOn      string
	requestsLog []string
}

func (f *fakeGithub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requestsLog = append(f.requestsLog, r.Method+" "+r.URL.Path)

		route := r.Method + " " + r.URL.Path
		if f.failOn != "" && strings.Contains(route, f.failOn) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"simulated failure"}`))
			return
		}

		respond := func(v interface{}) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(v)
		}

		switch {
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/git/refs/heads/"):
			respond(map[string]interface{}{"object": map[string]string{"sha": "base-sha"}})
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/git/commits/"):
			respond(map[string]interface{}{"tree": map[string]string{"sha": "base-tree-sha"}})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/git/blobs"):
			f.blobs++
			respond(map[string]string{"sha": "blob-sha"})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/git/refs"):
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			f.branch = body["ref"]
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{}`))
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/git/trees"):
			respond(map[string]string{"sha": "tree-sha"})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/git/commits"):
			respond(map[string]string{"sha": "commit-sha"})
		case r.Method == http.MethodPatch && strings.Contains(r.URL.Path, "/git/refs/heads/"):
			f.refUpdated = true
			respond(map[string]string{})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/pulls"):
			f.prCreated = true
			respond(map[string]string{"html_url": "https://github.com/owner/repo/pull/7"})
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestGithubSink(serverURL, mode string) *GithubSink {
	sink := NewGithubSink(config.PublishConfig{
		Provider:     "github",
		Mode:         mode,
		GithubOwner:  "owner",
		GithubRepo:   "repo",
		GithubToken:  "token",
		GithubBranch: "main",
	}, zerolog.Nop())
	sink.baseURL = serverURL
	sink.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return sink
}

func testFiles() []models.PublishFile {
	return []models.PublishFile{
		{Locale: i18n.LocaleEN, Slug: "learn-sql", Path: "content/posts/en/learn-sql.mdx", Content: "doc en"},
		{Locale: i18n.LocalePT, Slug: "aprenda-sql", Path: "content/posts/pt/aprenda-sql.mdx", Content: "doc pt"},
	}
}

func TestGithubSinkCommitMode(t *testing.T) {
	fake := &fakeGithub{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	sink := newTestGithubSink(server.URL, "commit")
	result, err := sink.Publish(context.Background(), testFiles(), "Publish post learn-sql (en/pt/es/it)")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if result.CommitSHA != "commit-sha" {
		t.Errorf("CommitSHA = %q", result.CommitSHA)
	}
	if result.CommitURL != "https://github.com/owner/repo/commit/commit-sha" {
		t.Errorf("CommitURL = %q", result.CommitURL)
	}
	if result.PRURL != "" {
		t.Errorf("commit mode should not open a PR, got %q", result.PRURL)
	}
	if fake.blobs != 2 {
		t.Errorf("expected 2 blobs, got %d", fake.blobs)
	}
	if !fake.refUpdated {
		t.Error("ref should be updated")
	}
	if fake.prCreated {
		t.Error("no PR expected in commit mode")
	}

	// The ref update is the final mutation
	last := fake.requestsLog[len(fake.requestsLog)-1]
	if !strings.HasPrefix(last, "PATCH ") {
		t.Errorf("last request = %q, want the ref update", last)
	}
}

func TestGithubSinkPRMode(t *testing.T) {
	fake := &fakeGithub{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	sink := newTestGithubSink(server.URL, "pr")
	result, err := sink.Publish(context.Background(), testFiles(), "Publish post learn-sql (en/pt/es/it)")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if result.PRURL != "https://github.com/owner/repo/pull/7" {
		t.Errorf("PRURL = %q", result.PRURL)
	}
	if !fake.prCreated {
		t.Error("PR should be created")
	}
	if !strings.HasPrefix(fake.branch, "refs/heads/publish/") {
		t.Errorf("branch ref = %q", fake.branch)
	}
}

func TestGithubSinkHardFailure(t *testing.T) {
	fake := &fakeGithub{failOn: "/git/trees"}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	sink := newTestGithubSink(server.URL, "commit")
	_, err := sink.Publish(context.Background(), testFiles(), "msg")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error should carry the status code: %v", err)
	}
	if fake.refUpdated {
		t.Error("ref must not move after an earlier step fails")
	}
}

func TestGithubSinkUnconfigured(t *testing.T) {
	sink := NewGithubSink(config.PublishConfig{Provider: "github", Mode: "commit"}, zerolog.Nop())
	if _, err := sink.Publish(context.Background(), testFiles(), "msg"); err == nil {
		t.Fatal("expected an error when owner/repo/token are missing")
	}
}
