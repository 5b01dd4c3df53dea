package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saint0x/gitreadme/pkg/github"
	"github.com/saint0x/gitreadme/pkg/signals"
)

func sampleProfile() *Profile {
	structure := "📁 src/\n  🐍 app.py\n📄 requirements.txt\n"
	return &Profile{
		Repo: github.RepoRef{Owner: "octo", Name: "cat"},
		Metadata: github.Metadata{
			Name:        "cat",
			Description: "A feline toolkit",
			Language:    "Python",
			Topics:      []string{"cli", "cats"},
			Stars:       12,
			Forks:       3,
			License:     "MIT License",
		},
		Readme:    "# Cat",
		Manifest:  json.RawMessage(`{"name":"cat","scripts":{"start":"node index.js"},"a":1}`),
		Structure: structure,
		Features:  signals.Extract(structure, nil),
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first := Build(sampleProfile())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Build(sampleProfile()))
	}
	assert.Equal(t, Fingerprint(first), Fingerprint(Build(sampleProfile())))
}

func TestBuildSectionOrder(t *testing.T) {
	out := Build(sampleProfile())

	markers := []string{
		"You are an expert developer",
		"Repository Information:",
		"Repository Structure:",
		"Package.json (if available):",
		"Existing README (if any):",
		"Repository Analysis:",
		"CRITICAL REQUIREMENTS:",
		"CONTENT REQUIREMENTS:",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(out, m)
		require.GreaterOrEqual(t, idx, 0, "missing %q", m)
		assert.Greater(t, idx, last, "%q out of order", m)
		last = idx
	}
}

func TestBuildContent(t *testing.T) {
	out := Build(sampleProfile())

	assert.Contains(t, out, "- Name: cat\n")
	assert.Contains(t, out, "- Topics: cli, cats\n")
	assert.Contains(t, out, "- Stars: 12\n")
	assert.Contains(t, out, "- License: MIT License")
	assert.Contains(t, out, "Repository Structure:\n📁 src/\n  🐍 app.py\n📄 requirements.txt\n\n")
	// key order of the manifest is preserved
	assert.Contains(t, out, "{\n  \"name\": \"cat\",\n  \"scripts\": {\n    \"start\": \"node index.js\"\n  },\n  \"a\": 1\n}")
	assert.Contains(t, out, "Existing README (if any):\n# Cat...")
	assert.Contains(t, out, "- Project Type: Python\n")
	assert.Contains(t, out, "- Detected Archetypes: Python, CLI, Library\n")
	assert.Contains(t, out, "- Has Package Manager: pip\n")
	assert.Contains(t, out, "- Has Python Requirements: Yes")
	assert.Contains(t, out, "- Has Docker: No")
	assert.Contains(t, out, `Use "cat" throughout`)
}

func TestBuildEmptyProfile(t *testing.T) {
	out := Build(&Profile{Repo: github.RepoRef{Owner: "octo", Name: "void"}})

	assert.Contains(t, out, "- Name: void\n")
	assert.Contains(t, out, "- Description: No description available\n")
	assert.Contains(t, out, "- Topics: No topics\n")
	assert.Contains(t, out, "- License: Not specified")
	assert.Contains(t, out, "Repository Structure:\nNo structure available")
	assert.Contains(t, out, "Package.json (if available):\nNot available")
	assert.Contains(t, out, "Existing README (if any):\nNo existing README found")
	assert.Contains(t, out, "- Project Type: Unknown\n")
	assert.Contains(t, out, "- Detected Archetypes: Unknown\n")
	assert.Contains(t, out, "- Has Package Manager: None")
	assert.NotContains(t, out, ": Yes")
}

func TestReadmeExcerptTruncatesRunes(t *testing.T) {
	long := strings.Repeat("é", 1500)
	got := readmeSection(long)

	assert.Equal(t, strings.Repeat("é", 1000)+"...", got)
}

func TestManifestSectionInvalidJSON(t *testing.T) {
	assert.Equal(t, noManifest, manifestSection(json.RawMessage(`{oops`)))
	assert.Equal(t, noManifest, manifestSection(nil))
}

func TestFingerprintDistinguishesPrompts(t *testing.T) {
	a := Fingerprint("alpha")
	b := Fingerprint("beta")

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Fingerprint("alpha"))
}

func TestBuildKeepsStructureVerbatim(t *testing.T) {
	tests := []struct {
		name      string
		structure string
	}{
		{name: "trailing newline", structure: "📁 src/\n  🐍 app.py\n"},
		{name: "no trailing newline", structure: "📄 main.go"},
		{name: "blank trailing lines", structure: "📄 main.go\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProfile()
			p.Structure = tt.structure
			out := Build(p)

			section := "Repository Structure:\n" + tt.structure
			require.Contains(t, out, section)
			rest := out[strings.Index(out, section)+len(section):]
			assert.True(t, strings.HasPrefix(strings.TrimLeft(rest, "\n"), "Package.json (if available):"))
			assert.True(t, strings.HasPrefix(rest, "\n"))
		})
	}
}

func TestJoinSections(t *testing.T) {
	assert.Equal(t, "a\n\nb\n\nc", joinSections([]string{"a", "b", "c"}))
	assert.Equal(t, "a\n\nb", joinSections([]string{"a\n", "b"}))
	assert.Equal(t, "", joinSections(nil))
}
