package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/config"
	"github.com/techskillsthatpay/content-server/internal/models"
)

const githubAPIBase = "https://api.github.com"

// GithubSink batches all files of one publish into a single commit via
// the git data API: blobs, then a tree, then a commit, and the ref
// update last so nothing is visible until every object exists. In "pr"
// mode the commit lands on a fresh branch and a pull request is opened
// instead of committing to the base branch.
type GithubSink struct {
	cfg     config.PublishConfig
	baseURL string
	client  *http.Client
	log     zerolog.Logger
	now     func() time.Time
}

// NewGithubSink creates a sink committing to the configured repository
func NewGithubSink(cfg config.PublishConfig, log zerolog.Logger) *GithubSink {
	return &GithubSink{
		cfg:     cfg,
		baseURL: githubAPIBase,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log.With().Str("component", "github_sink").Logger(),
		now:     time.Now,
	}
}

// Name identifies the sink in logs and responses
func (s *GithubSink) Name() string { return "github" }

// Publish runs the blob→tree→commit→ref-update sequence
func (s *GithubSink) Publish(ctx context.Context, files []models.PublishFile, message string) (*models.PublishResult, error) {
	if s.cfg.GithubOwner == "" || s.cfg.GithubRepo == "" || s.cfg.GithubToken == "" {
		return nil, fmt.Errorf("github publishing is not configured")
	}

	baseSHA, err := s.refSHA(ctx, s.cfg.GithubBranch)
	if err != nil {
		return nil, err
	}
	baseTreeSHA, err := s.commitTreeSHA(ctx, baseSHA)
	if err != nil {
		return nil, err
	}

	blobs := make([]treeEntry, 0, len(files))
	for _, file := range files {
		sha, err := s.createBlob(ctx, file.Content)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, treeEntry{Path: file.Path, Mode: "100644", Type: "blob", SHA: sha})
	}

	targetBranch := s.cfg.GithubBranch
	if s.cfg.Mode == "pr" {
		targetBranch = "publish/" + s.now().UTC().Format("20060102-150405")
		if err := s.createBranch(ctx, targetBranch, baseSHA); err != nil {
			return nil, err
		}
	}

	treeSHA, err := s.createTree(ctx, baseTreeSHA, blobs)
	if err != nil {
		return nil, err
	}
	commitSHA, err := s.createCommit(ctx, message, treeSHA, baseSHA)
	if err != nil {
		return nil, err
	}
	if err := s.updateRef(ctx, targetBranch, commitSHA); err != nil {
		return nil, err
	}

	result := &models.PublishResult{
		CommitSHA: commitSHA,
		CommitURL: fmt.Sprintf("https://github.com/%s/%s/commit/%s", s.cfg.GithubOwner, s.cfg.GithubRepo, commitSHA),
	}

	if s.cfg.Mode == "pr" {
		prURL, err := s.createPullRequest(ctx, message, targetBranch, s.cfg.GithubBranch)
		if err != nil {
			return nil, err
		}
		result.PRURL = prURL
		s.log.Info().Str("pr_url", prURL).Str("commit_sha", commitSHA).Msg("GitHub PR created")
		return result, nil
	}

	s.log.Info().Str("commit_url", result.CommitURL).Str("commit_sha", commitSHA).Msg("GitHub commit created")
	return result, nil
}

type treeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

func (s *GithubSink) repoURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s%s", s.baseURL, s.cfg.GithubOwner, s.cfg.GithubRepo, path)
}

// request performs one API call, treating any non-2xx response as a
// hard failure with no retry
func (s *GithubSink) request(ctx context.Context, method, url string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.GithubToken)
	req.Header.Set("User-Agent", "techskillsthatpay-publisher")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(res.Body)
		return fmt.Errorf("github API error %d: %s", res.StatusCode, string(text))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (s *GithubSink) refSHA(ctx context.Context, branch string) (string, error) {
	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := s.request(ctx, http.MethodGet, s.repoURL("/git/refs/heads/"+branch), nil, &ref); err != nil {
		return "", err
	}
	return ref.Object.SHA, nil
}

func (s *GithubSink) commitTreeSHA(ctx context.Context, commitSHA string) (string, error) {
	var commit struct {
		Tree struct {
			SHA string `json:"sha"`
		} `json:"tree"`
	}
	if err := s.request(ctx, http.MethodGet, s.repoURL("/git/commits/"+commitSHA), nil, &commit); err != nil {
		return "", err
	}
	return commit.Tree.SHA, nil
}

func (s *GithubSink) createBlob(ctx context.Context, text string) (string, error) {
	payload := map[string]string{
		"content":  base64.StdEncoding.EncodeToString([]byte(text)),
		"encoding": "base64",
	}
	var blob struct {
		SHA string `json:"sha"`
	}
	if err := s.request(ctx, http.MethodPost, s.repoURL("/git/blobs"), payload, &blob); err != nil {
		return "", err
	}
	return blob.SHA, nil
}

func (s *GithubSink) createBranch(ctx context.Context, branch, baseSHA string) error {
	payload := map[string]string{"ref": "refs/heads/" + branch, "sha": baseSHA}
	return s.request(ctx, http.MethodPost, s.repoURL("/git/refs"), payload, nil)
}

func (s *GithubSink) createTree(ctx context.Context, baseTreeSHA string, entries []treeEntry) (string, error) {
	payload := map[string]interface{}{"base_tree": baseTreeSHA, "tree": entries}
	var tree struct {
		SHA string `json:"sha"`
	}
	if err := s.request(ctx, http.MethodPost, s.repoURL("/git/trees"), payload, &tree); err != nil {
		return "", err
	}
	return tree.SHA, nil
}

func (s *GithubSink) createCommit(ctx context.Context, message, treeSHA, parentSHA string) (string, error) {
	payload := map[string]interface{}{"message": message, "tree": treeSHA, "parents": []string{parentSHA}}
	var commit struct {
		SHA string `json:"sha"`
	}
	if err := s.request(ctx, http.MethodPost, s.repoURL("/git/commits"), payload, &commit); err != nil {
		return "", err
	}
	return commit.SHA, nil
}

func (s *GithubSink) updateRef(ctx context.Context, branch, commitSHA string) error {
	payload := map[string]interface{}{"sha": commitSHA, "force": false}
	return s.request(ctx, http.MethodPatch, s.repoURL("/git/refs/heads/"+branch), payload, nil)
}

func (s *GithubSink) createPullRequest(ctx context.Context, title, head, base string) (string, error) {
	payload := map[string]string{
		"title": title,
		"head":  head,
		"base":  base,
		"body":  "Automated publish from admin.",
	}
	var pr struct {
		HTMLURL string `json:"html_url"`
	}
	if err := s.request(ctx, http.MethodPost, s.repoURL("/pulls"), payload, &pr); err != nil {
		return "", err
	}
	return pr.HTMLURL, nil
}
