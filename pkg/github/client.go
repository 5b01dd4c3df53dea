package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/saint0x/gitreadme/pkg/log"
	"github.com/saint0x/gitreadme/pkg/tree"
)

const manifestPath = "package.json"

// Client handles GitHub operations
type Client struct {
	client  *github.Client
	logger  *log.Logger
	limiter *rate.Limiter
}

// Option customizes a Client
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	rps        float64
}

// WithBaseURL points the client at another API root, e.g. a test server
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient sets the transport used when no token is configured
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRateLimit throttles outbound calls to rps requests per second
func WithRateLimit(rps float64) Option {
	return func(o *options) { o.rps = rps }
}

// New creates a new GitHub client. An empty token is allowed and only lowers
// the upstream rate limit.
func New(logger *log.Logger, token string, opts ...Option) (*Client, error) {
	o := options{rps: 10}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		logger.Warning("No GITHUB_TOKEN provided. Using unauthenticated requests with lower rate limits.")
	}

	gh := github.NewClient(httpClient)
	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		gh.BaseURL = u
	}

	burst := int(o.rps)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		client:  gh,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(o.rps), burst),
	}, nil
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

// GetRepository fetches repository metadata
func (c *Client) GetRepository(ctx context.Context, ref RepoRef) (*Metadata, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	repository, resp, err := c.client.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, classify(ref, "repository", resp, err)
	}

	meta := &Metadata{
		Name:        repository.GetName(),
		Description: repository.GetDescription(),
		Language:    repository.GetLanguage(),
		Topics:      repository.Topics,
		Stars:       repository.GetStargazersCount(),
		Forks:       repository.GetForksCount(),
		License:     repository.GetLicense().GetName(),
	}
	if meta.Name == "" {
		meta.Name = ref.Name
	}
	if meta.Language == "" {
		meta.Language = "Unknown"
	}
	if meta.Topics == nil {
		meta.Topics = []string{}
	}
	return meta, nil
}

// ListContents returns one directory listing
func (c *Client) ListContents(ctx context.Context, owner, repo, path string) ([]tree.Entry, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	ref := RepoRef{Owner: owner, Name: repo}
	file, dir, resp, err := c.client.Repositories.GetContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{})
	if err != nil {
		return nil, classify(ref, "repository contents", resp, err)
	}
	if file != nil {
		return nil, fmt.Errorf("path %q is a file, not a directory", path)
	}

	entries := make([]tree.Entry, 0, len(dir))
	for _, item := range dir {
		entries = append(entries, tree.Entry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Kind: tree.KindFromAPI(item.GetType()),
		})
	}
	c.logger.Debug("Listed %s/%s (%d entries)", ref, path, len(entries))
	return entries, nil
}

// GetReadme returns the decoded README, or "" when the repository has none
func (c *Client) GetReadme(ctx context.Context, ref RepoRef) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	content, resp, err := c.client.Repositories.GetReadme(ctx, ref.Owner, ref.Name, &github.RepositoryContentGetOptions{})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", classify(ref, "README", resp, err)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode README: %w", err)
	}
	return decoded, nil
}

// GetManifest returns package.json as raw JSON, or nil when it is absent
func (c *Client) GetManifest(ctx context.Context, ref RepoRef) (json.RawMessage, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	file, _, resp, err := c.client.Repositories.GetContents(ctx, ref.Owner, ref.Name, manifestPath, &github.RepositoryContentGetOptions{})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, classify(ref, manifestPath, resp, err)
	}
	if file == nil {
		return nil, nil
	}

	decoded, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", manifestPath, err)
	}
	raw := json.RawMessage(decoded)
	if !json.Valid(raw) {
		return nil, errors.New(manifestPath + " is not valid JSON")
	}
	return raw, nil
}
