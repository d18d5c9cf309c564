package records

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"punchclock/internal/common"
	"punchclock/internal/logging"
	"punchclock/internal/models"
)

const (
	defaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github+json"
	apiVersion     = "2022-11-28"

	// initMessage is the commit description for create-on-first-read.
	initMessage = "Inicializa banco de pontos (arquivo JSON)"
)

// CorruptPolicy decides what Load does with collection bytes that fail to
// parse as JSON.
type CorruptPolicy int

const (
	// CorruptReset treats unparseable content as an empty collection and
	// logs a warning. This matches the historical behavior; the next commit
	// overwrites whatever was there.
	CorruptReset CorruptPolicy = iota

	// CorruptFail returns a *CorruptContentError instead of discarding data.
	CorruptFail
)

// GitHubStore implements Store over the GitHub repository contents REST API.
// The file's git blob SHA serves as the version token; GitHub rejects a PUT
// whose sha precondition is stale, which is the whole concurrency story.
type GitHubStore struct {
	owner   string
	repo    string
	branch  string
	token   string
	baseURL string
	client  *http.Client
	corrupt CorruptPolicy
	log     logging.Logger
}

// GitHubOption customizes a GitHubStore.
type GitHubOption func(*GitHubStore)

// WithBranch selects the branch to read and write. Default "main".
func WithBranch(branch string) GitHubOption {
	return func(s *GitHubStore) { s.branch = branch }
}

// WithBaseURL overrides the API root, e.g. for a GitHub Enterprise host or
// an httptest server.
func WithBaseURL(u string) GitHubOption {
	return func(s *GitHubStore) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) GitHubOption {
	return func(s *GitHubStore) { s.client = c }
}

// WithCorruptPolicy selects the unparseable-content policy. Default CorruptReset.
func WithCorruptPolicy(p CorruptPolicy) GitHubOption {
	return func(s *GitHubStore) { s.corrupt = p }
}

// WithLogger attaches a logger. Default is a no-op logger.
func WithLogger(l logging.Logger) GitHubOption {
	return func(s *GitHubStore) { s.log = logging.OrNop(l) }
}

// NewGitHubStore returns a store for the given repository. token must carry
// write scope on the repository.
func NewGitHubStore(owner, repo, token string, opts ...GitHubOption) *GitHubStore {
	s := &GitHubStore{
		owner:   owner,
		repo:    repo,
		branch:  "main",
		token:   token,
		baseURL: defaultBaseURL,
		client:  http.DefaultClient,
		corrupt: CorruptReset,
		log:     logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GitHubStore) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.baseURL, s.owner, s.repo, path)
}

func (s *GitHubStore) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
}

// contentsResponse is the subset of the GET response the store cares about.
type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// putRequest is the PUT payload. SHA is the CAS precondition and is omitted
// when creating a fresh file.
type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// putResponse carries the new blob SHA after a successful write.
type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// Load implements Store. A 404 initializes the remote file with an empty
// array and returns the resulting token.
func (s *GitHubStore) Load(ctx context.Context, path string) ([]models.Record, string, error) {
	u := s.contentsURL(path) + "?ref=" + url.QueryEscape(s.branch)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building load request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("loading %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading load response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var payload contentsResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, "", fmt.Errorf("decoding contents response: %w", err)
		}
		recs, err := s.decodeCollection(ctx, path, payload.Content)
		if err != nil {
			return nil, "", err
		}
		return recs, payload.SHA, nil

	case http.StatusNotFound:
		s.log.Info(ctx, "collection missing, initializing", "path", path)
		sha, err := s.Commit(ctx, path, []models.Record{}, "", initMessage)
		if err != nil {
			return nil, "", fmt.Errorf("initializing %s: %w", path, err)
		}
		return []models.Record{}, sha, nil

	default:
		return nil, "", &RemoteError{Op: "load", StatusCode: resp.StatusCode, Body: string(body)}
	}
}

// decodeCollection turns the base64 file content into records, applying the
// corrupt-content policy on failure. GitHub wraps base64 across lines, so
// whitespace is stripped first.
func (s *GitHubStore) decodeCollection(ctx context.Context, path, content string) ([]models.Record, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, content)

	raw, err := base64.StdEncoding.DecodeString(compact)
	var recs []models.Record
	if err == nil {
		err = json.Unmarshal(raw, &recs)
	}
	if err != nil {
		if s.corrupt == CorruptFail {
			return nil, &CorruptContentError{Path: path, Err: err}
		}
		s.log.Warn(ctx, "unparseable collection content, treating as empty",
			"path", path, "error", err)
		return []models.Record{}, nil
	}
	if recs == nil {
		recs = []models.Record{}
	}
	return recs, nil
}

// Commit implements Store. The whole array is written as pretty-printed
// UTF-8 JSON; a 409 from GitHub maps to common.ErrVersionConflict.
func (s *GitHubStore) Commit(ctx context.Context, path string, recs []models.Record, version, message string) (string, error) {
	if recs == nil {
		recs = []models.Record{}
	}
	content, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing collection: %w", err)
	}

	payload := putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  s.branch,
		SHA:     version,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("serializing commit payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building commit request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("committing %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading commit response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var pr putResponse
		if err := json.Unmarshal(respBody, &pr); err != nil {
			return "", fmt.Errorf("decoding commit response: %w", err)
		}
		return pr.Content.SHA, nil

	case http.StatusConflict:
		// Someone else committed first. The caller reloads and retries.
		return "", common.ErrVersionConflict

	default:
		return "", &RemoteError{Op: "commit", StatusCode: resp.StatusCode, Body: string(respBody)}
	}
}
