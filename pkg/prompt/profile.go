package prompt

import (
	"encoding/json"

	"github.com/saint0x/gitreadme/pkg/github"
	"github.com/saint0x/gitreadme/pkg/signals"
)

// Profile is everything known about one repository for one request
type Profile struct {
	Repo      github.RepoRef
	Metadata  github.Metadata
	Readme    string
	Manifest  json.RawMessage
	Structure string
	Features  signals.Features
}
