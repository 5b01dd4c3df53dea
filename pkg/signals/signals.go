// Package signals derives a fixed set of boolean observations from a
// repository structure document.
//
// Every primitive flag is a case-sensitive substring test against the whole
// document. This is deliberately coarse: a file called test-results.png sets
// HasTests, and "api" matches "rapid.txt". Matching is kept literal so the
// signals stay comparable with earlier output.
package signals

import (
	"strings"
)

// Flag names one observation
type Flag uint8

// Primitive flags, in catalog order
const (
	HasChangelog Flag = iota
	HasContributing
	HasTests
	HasDocker
	HasCI
	HasAPI
	HasDocs
	HasBenchmarks
	HasExamples
	HasPackageJSON
	HasRequirements
	HasMainFile
	HasHTML
	HasCSS
	HasReact
	HasNodeModules
	HasGit
	HasConfig
	HasSrc
	HasDist
	HasPublic
	HasAssets
	HasData
	HasImages
	HasScripts
	HasUtils
	HasComponents
	HasPages
	HasServices
	HasModels

	// derived flags, evaluated after every primitive
	IsPythonProject
	IsNodeProject
	IsWebProject
	IsCLIProject
	IsLibrary

	flagCount
)

type rule struct {
	flag   Flag
	key    string
	label  string
	tokens []string
}

// catalog is the token table for primitive flags
var catalog = []rule{
	{HasChangelog, "hasChangelog", "Has Changelog", []string{"CHANGELOG.md", "CHANGELOG"}},
	{HasContributing, "hasContributing", "Has Contributing Guide", []string{"CONTRIBUTING.md", "CONTRIBUTING"}},
	{HasTests, "hasTests", "Has Tests", []string{"test", "tests", "__tests__", ".test.", ".spec."}},
	{HasDocker, "hasDocker", "Has Docker", []string{"Dockerfile", "docker-compose"}},
	{HasCI, "hasCI", "Has CI/CD", []string{".github/workflows", ".gitlab-ci.yml", "travis.yml", "circle.yml"}},
	{HasAPI, "hasAPI", "Has API", []string{"api", "routes", "controllers"}},
	{HasDocs, "hasDocs", "Has Documentation", []string{"docs", "documentation"}},
	{HasBenchmarks, "hasBenchmarks", "Has Benchmarks", []string{"benchmark", "performance"}},
	{HasExamples, "hasExamples", "Has Examples", []string{"examples", "demo"}},
	{HasPackageJSON, "hasPackageJson", "Has package.json", []string{"package.json"}},
	{HasRequirements, "hasRequirements", "Has Python Requirements", []string{"requirements.txt", "Pipfile", "pyproject.toml"}},
	{HasMainFile, "hasMainFile", "Has Main File", []string{"index.js", "index.ts", "main.js", "main.ts", "app.js", "app.ts", "app.py", "main.py"}},
	{HasHTML, "hasHTML", "Has HTML", []string{"index.html", ".html"}},
	{HasCSS, "hasCSS", "Has Stylesheets", []string{".css", ".scss", ".sass"}},
	{HasReact, "hasReact", "Has React", []string{"react", "jsx", "tsx"}},
	{HasNodeModules, "hasNodeModules", "Has node_modules", []string{"node_modules"}},
	{HasGit, "hasGit", "Has .gitignore", []string{".gitignore"}},
	{HasConfig, "hasConfig", "Has Configuration", []string{"config", ".env", ".config"}},
	{HasSrc, "hasSrc", "Has Source Code", []string{"src/"}},
	{HasDist, "hasDist", "Has Build Output", []string{"dist/", "build/"}},
	{HasPublic, "hasPublic", "Has Public Directory", []string{"public/"}},
	{HasAssets, "hasAssets", "Has Assets", []string{"assets/", "static/"}},
	{HasData, "hasData", "Has Data Files", []string{"data/", "json", "csv"}},
	{HasImages, "hasImages", "Has Images", []string{"images/", "img/", ".png", ".jpg", ".svg"}},
	{HasScripts, "hasScripts", "Has Scripts", []string{"scripts/", ".sh", ".bat"}},
	{HasUtils, "hasUtils", "Has Utils/Helpers", []string{"utils/", "helpers/", "lib/", "utils.py", "utils.js"}},
	{HasComponents, "hasComponents", "Has Components", []string{"components/", "components.js", "components.ts"}},
	{HasPages, "hasPages", "Has Pages/Views", []string{"pages/", "views/"}},
	{HasServices, "hasServices", "Has Services", []string{"services/", "api/"}},
	{HasModels, "hasModels", "Has Models/Types", []string{"models/", "types/", "interfaces/"}},
}

var derivedKeys = map[Flag]string{
	IsPythonProject: "isPythonProject",
	IsNodeProject:   "isNodeProject",
	IsWebProject:    "isWebProject",
	IsCLIProject:    "isCLIProject",
	IsLibrary:       "isLibrary",
}

// String returns the camelCase key of the flag
func (f Flag) String() string {
	if int(f) < len(catalog) {
		return catalog[f].key
	}
	if key, ok := derivedKeys[f]; ok {
		return key
	}
	return "unknown"
}

// Label returns the human-readable name used in prompts
func (f Flag) Label() string {
	if int(f) < len(catalog) {
		return catalog[f].label
	}
	return f.String()
}

// Primitives lists the primitive flags in catalog order
func Primitives() []Flag {
	out := make([]Flag, len(catalog))
	for i, r := range catalog {
		out[i] = r.flag
	}
	return out
}

// Features is the observation vector, one bit per Flag
type Features uint64

// Has reports whether f is set
func (fs Features) Has(f Flag) bool {
	return fs&(1<<f) != 0
}

func (fs Features) with(f Flag, on bool) Features {
	if on {
		return fs | 1<<f
	}
	return fs
}

// Map expands the vector into a key -> bool map covering every flag
func (fs Features) Map() map[string]bool {
	out := make(map[string]bool, flagCount)
	for f := Flag(0); f < flagCount; f++ {
		out[f.String()] = fs.Has(f)
	}
	return out
}

// Extract scans a structure document. A non-empty manifest means package.json
// was fetched, which sets HasPackageJSON even if the listing was truncated.
func Extract(structure string, manifest []byte) Features {
	var fs Features
	for _, r := range catalog {
		fs = fs.with(r.flag, containsAny(structure, r.tokens))
	}
	fs = fs.with(HasPackageJSON, len(manifest) > 0)
	return derive(fs, structure)
}

// derive evaluates archetype flags from finalized primitives
func derive(fs Features, structure string) Features {
	web := fs.Has(HasHTML) || fs.Has(HasCSS) || fs.Has(HasReact)
	fs = fs.with(IsPythonProject, fs.Has(HasRequirements) || strings.Contains(structure, ".py"))
	fs = fs.with(IsNodeProject, fs.Has(HasPackageJSON) || strings.Contains(structure, "node_modules"))
	fs = fs.with(IsWebProject, web)
	fs = fs.with(IsCLIProject, fs.Has(HasMainFile) && !web)
	fs = fs.with(IsLibrary, fs.Has(HasSrc) && !fs.Has(HasHTML))
	return fs
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
