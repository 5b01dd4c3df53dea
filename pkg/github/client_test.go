package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saint0x/gitreadme/pkg/log"
	"github.com/saint0x/gitreadme/pkg/tree"
)

func newTestClient(t *testing.T, token string, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := New(log.Discard(), token, WithBaseURL(srv.URL), WithRateLimit(1000))
	require.NoError(t, err)
	return client
}

func encoded(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantError bool
	}{
		{name: "Simple URL", url: "https://github.com/owner/repo", wantOwner: "owner", wantRepo: "repo"},
		{name: "Dotted names", url: "https://github.com/my.org/repo.js", wantOwner: "my.org", wantRepo: "repo.js"},
		{name: "Trailing slash", url: "https://github.com/owner/repo/", wantError: true},
		{name: "Extra segment", url: "https://github.com/owner/repo/tree/main", wantError: true},
		{name: "Missing repo", url: "https://github.com/invalid", wantError: true},
		{name: "HTTP scheme", url: "http://github.com/owner/repo", wantError: true},
		{name: "SSH URL", url: "git@github.com:owner/repo.git", wantError: true},
		{name: "Other host", url: "https://gitlab.com/owner/repo", wantError: true},
		{name: "Leading space", url: " https://github.com/owner/repo", wantError: true},
		{name: "Empty", url: "", wantError: true},
		{name: "Not a URL", url: "not-a-url", wantError: true},
		{name: "Parent owner", url: "https://github.com/../user", wantError: true},
		{name: "Current owner", url: "https://github.com/./repo", wantError: true},
		{name: "Parent repo", url: "https://github.com/owner/..", wantError: true},
		{name: "Current repo", url: "https://github.com/owner/.", wantError: true},
		{name: "Dot prefixed repo", url: "https://github.com/owner/.github", wantOwner: "owner", wantRepo: ".github"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseRepoURL(tt.url)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, ref.Owner)
			assert.Equal(t, tt.wantRepo, ref.Name)
			assert.Equal(t, tt.wantOwner+"/"+tt.wantRepo, ref.String())
		})
	}
}

func TestGetRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/cat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"name":"cat","description":"meow","language":"Go","topics":["cli","ai"],
			"stargazers_count":42,"forks_count":7,"license":{"name":"MIT License"}}`)
	})
	mux.HandleFunc("/repos/octo/bare", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"bare"}`)
	})

	client := newTestClient(t, "secret", mux)

	meta, err := client.GetRepository(context.Background(), RepoRef{Owner: "octo", Name: "cat"})
	require.NoError(t, err)
	assert.Equal(t, &Metadata{
		Name:        "cat",
		Description: "meow",
		Language:    "Go",
		Topics:      []string{"cli", "ai"},
		Stars:       42,
		Forks:       7,
		License:     "MIT License",
	}, meta)

	meta, err = client.GetRepository(context.Background(), RepoRef{Owner: "octo", Name: "bare"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", meta.Language)
	assert.Equal(t, []string{}, meta.Topics)
	assert.Empty(t, meta.License)
}

func TestGetRepositoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		kind    error
		message string
	}{
		{name: "not found", status: http.StatusNotFound, kind: ErrNotFound, message: "Repository not found: octo/cat"},
		{name: "forbidden", status: http.StatusForbidden, kind: ErrRateLimited, message: "Rate limit exceeded. Please add GITHUB_TOKEN for higher limits."},
		{name: "server error", status: http.StatusBadGateway, kind: ErrFetchFailed, message: "Failed to fetch repository: Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/octo/cat", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"message":"nope"}`)
			})
			client := newTestClient(t, "", mux)

			_, err := client.GetRepository(context.Background(), RepoRef{Owner: "octo", Name: "cat"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())

			var upstream *UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, tt.status, upstream.StatusCode)
		})
	}
}

func TestGetRepositoryRateLimitHeaders(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/cat", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "4102444800")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded for 127.0.0.1."}`)
	})
	client := newTestClient(t, "", mux)

	_, err := client.GetRepository(context.Background(), RepoRef{Owner: "octo", Name: "cat"})
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestListContents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/cat/contents/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name":"main.go","path":"main.go","type":"file"},
			{"name":"pkg","path":"pkg","type":"dir"},
			{"name":"vendor-lib","path":"vendor-lib","type":"submodule"}
		]`)
	})
	mux.HandleFunc("/repos/octo/cat/contents/pkg", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"util.go","path":"pkg/util.go","type":"file"}]`)
	})
	mux.HandleFunc("/repos/octo/cat/contents/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	client := newTestClient(t, "", mux)

	entries, err := client.ListContents(context.Background(), "octo", "cat", "")
	require.NoError(t, err)
	assert.Equal(t, []tree.Entry{
		{Name: "main.go", Path: "main.go", Kind: tree.File},
		{Name: "pkg", Path: "pkg", Kind: tree.Directory},
		{Name: "vendor-lib", Path: "vendor-lib", Kind: tree.File},
	}, entries)

	entries, err = client.ListContents(context.Background(), "octo", "cat", "pkg")
	require.NoError(t, err)
	assert.Equal(t, []tree.Entry{{Name: "util.go", Path: "pkg/util.go", Kind: tree.File}}, entries)

	_, err = client.ListContents(context.Background(), "octo", "cat", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReadme(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/cat/readme", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type":"file","encoding":"base64","name":"README.md","path":"README.md","content":%q}`, encoded("# Cat\nmeow"))
	})
	mux.HandleFunc("/repos/octo/empty/readme", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	client := newTestClient(t, "", mux)

	readme, err := client.GetReadme(context.Background(), RepoRef{Owner: "octo", Name: "cat"})
	require.NoError(t, err)
	assert.Equal(t, "# Cat\nmeow", readme)

	readme, err = client.GetReadme(context.Background(), RepoRef{Owner: "octo", Name: "empty"})
	require.NoError(t, err)
	assert.Empty(t, readme)
}

func TestGetManifest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/cat/contents/package.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type":"file","encoding":"base64","name":"package.json","path":"package.json","content":%q}`, encoded(`{"name":"cat","version":"1.0.0"}`))
	})
	mux.HandleFunc("/repos/octo/broken/contents/package.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type":"file","encoding":"base64","name":"package.json","path":"package.json","content":%q}`, encoded(`{not json`))
	})
	mux.HandleFunc("/repos/octo/none/contents/package.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	client := newTestClient(t, "", mux)

	manifest, err := client.GetManifest(context.Background(), RepoRef{Owner: "octo", Name: "cat"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"cat","version":"1.0.0"}`, string(manifest))

	manifest, err = client.GetManifest(context.Background(), RepoRef{Owner: "octo", Name: "none"})
	require.NoError(t, err)
	assert.Nil(t, manifest)

	_, err = client.GetManifest(context.Background(), RepoRef{Owner: "octo", Name: "broken"})
	assert.Error(t, err)
}

func TestNewWithoutToken(t *testing.T) {
	client, err := New(log.Discard(), "")
	require.NoError(t, err)
	assert.NotNil(t, client.client)
	assert.NotNil(t, client.limiter)
}
