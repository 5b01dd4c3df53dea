package readme

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/saint0x/gitreadme/pkg/prompt"
	"github.com/saint0x/gitreadme/pkg/signals"
)

// shields.io reserves dashes and underscores in badge text
var shieldEscaper = strings.NewReplacer("-", "--", "_", "__", " ", "%20")

var fallbackTemplate = template.Must(template.New("fallback").Funcs(template.FuncMap{
	"join":         strings.Join,
	"has":          func(fs signals.Features, f signals.Flag) bool { return fs.Has(f) },
	"escapeShield": shieldEscaper.Replace,
	"licenseName":  licenseName,
}).Parse(`# 🚀 {{.Name}}

[![License](https://img.shields.io/badge/license-{{escapeShield .License}}-green)](https://github.com/{{.Owner}}/{{.Repo}}/blob/main/LICENSE)
[![Stars](https://img.shields.io/github/stars/{{.Owner}}/{{.Repo}})](https://github.com/{{.Owner}}/{{.Repo}}/stargazers)

> {{.Description}}

## 📋 Table of Contents

- [🚀 Quick Start](#-quick-start)
- [🎯 Usage](#-usage)
{{- if has .Features .HasTests}}
- [🧪 Testing](#-testing)
{{- end}}
{{- if .Deploy}}
- [🚀 Deployment](#-deployment)
{{- end}}
- [📄 License](#-license)

### Repository Stats

- **⭐ Stars**: {{.Stars}}
- **🍴 Forks**: {{.Forks}}
- **🔤 Language**: {{.Language}}
{{- if .Topics}}
- **📦 Topics**: {{join .Topics ", "}}
{{- end}}

## 🚀 Quick Start

` + "```bash" + `
git clone https://github.com/{{.Owner}}/{{.Repo}}.git
cd {{.Repo}}
{{- range .Install}}
{{.}}
{{- end}}
` + "```" + `

## 🎯 Usage

` + "```bash" + `
{{- range .Usage}}
{{.}}
{{- end}}
` + "```" + `
{{- if has .Features .HasTests}}

## 🧪 Testing

` + "```bash" + `
{{.TestCommand}}
` + "```" + `
{{- end}}
{{- if .Deploy}}

## 🚀 Deployment
{{- if has .Features .HasDocker}}

` + "```bash" + `
docker build -t {{.Repo}} .
docker run {{.Repo}}
` + "```" + `
{{- end}}
{{- if has .Features .HasCI}}

Continuous integration workflows live in ` + "`.github/workflows`" + `.
{{- end}}
{{- end}}

## 📄 License

This project is licensed under the {{licenseName .License}} - see the [LICENSE](LICENSE) file for details.

---

**Note**: This is a demo README. Configure GROQ_API_KEY to get an AI-generated README.
`))

type fallbackData struct {
	Name, Owner, Repo, Description, Language, License string
	Topics                                             []string
	Stars, Forks                                       int
	Features                                           signals.Features
	Install, Usage                                     []string
	TestCommand                                        string
	Deploy                                             bool

	HasTests, HasDocker, HasCI signals.Flag
}

// Fallback renders the static README used when no generation credential is configured
func Fallback(p *prompt.Profile) (string, error) {
	fs := p.Features
	data := fallbackData{
		Name:        orDefault(p.Metadata.Name, p.Repo.Name),
		Owner:       p.Repo.Owner,
		Repo:        p.Repo.Name,
		Description: orDefault(p.Metadata.Description, "No description available."),
		Language:    orDefault(p.Metadata.Language, "Unknown"),
		License:     orDefault(p.Metadata.License, "MIT"),
		Topics:      p.Metadata.Topics,
		Stars:       p.Metadata.Stars,
		Forks:       p.Metadata.Forks,
		Features:    fs,
		Deploy:      fs.Has(signals.HasDocker) || fs.Has(signals.HasCI),
		HasTests:    signals.HasTests,
		HasDocker:   signals.HasDocker,
		HasCI:       signals.HasCI,
	}

	switch fs.Headline() {
	case signals.Python:
		data.Install = []string{"pip install -r requirements.txt"}
		data.Usage = []string{"python main.py"}
		data.TestCommand = "pytest"
	case signals.Node, signals.Web:
		data.Install = []string{"npm install"}
		data.Usage = []string{"npm start"}
		data.TestCommand = "npm test"
	case signals.CLI:
		data.Usage = []string{"./" + p.Repo.Name + " --help"}
		data.TestCommand = "make test"
	default:
		data.Usage = []string{"# see the source for entry points"}
		data.TestCommand = "make test"
	}

	var buf bytes.Buffer
	if err := fallbackTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// licenseName appends "License" unless the name already carries it, e.g.
// "MIT" becomes "MIT License" while "Apache License 2.0" is kept
func licenseName(name string) string {
	if strings.Contains(strings.ToLower(name), "license") {
		return name
	}
	return name + " License"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
