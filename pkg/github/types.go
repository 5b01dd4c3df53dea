package github

import (
	"fmt"
	"regexp"
)

var repoURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)$`)

// RepoRef identifies a repository by owner and name
type RepoRef struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoURL accepts exactly https://github.com/<owner>/<repo>. Dot segments
// are rejected: they would resolve outside /repos/ once joined into an API path.
func ParseRepoURL(repoURL string) (RepoRef, error) {
	m := repoURLPattern.FindStringSubmatch(repoURL)
	if m == nil || isDotSegment(m[1]) || isDotSegment(m[2]) {
		return RepoRef{}, fmt.Errorf("invalid GitHub repository URL: %q", repoURL)
	}
	return RepoRef{Owner: m[1], Name: m[2]}, nil
}

func isDotSegment(s string) bool {
	return s == "." || s == ".."
}

// Metadata is the subset of repository fields the prompt uses
type Metadata struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Language    string   `json:"language" yaml:"language"`
	Topics      []string `json:"topics" yaml:"topics"`
	Stars       int      `json:"stars" yaml:"stars"`
	Forks       int      `json:"forks" yaml:"forks"`
	License     string   `json:"license,omitempty" yaml:"license,omitempty"`
}
