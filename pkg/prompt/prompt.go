// Package prompt renders a repository profile into the instruction document
// sent to the completion backend. Rendering is pure: the same Profile always
// produces the same bytes.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saint0x/gitreadme/pkg/signals"
)

const (
	readmeExcerptRunes = 1000

	noStructure = "No structure available"
	noManifest  = "Not available"
	noReadme    = "No existing README found"
)

const preamble = `You are an expert developer, technical writer, and open-source advocate.

CRITICAL: Generate ONLY the final README.md content. Do NOT include any thinking process, analysis, explanations, or thinking tags. Start directly with the README title and content.

IMPORTANT: Do NOT include <think> tags, thinking process, analysis, or any meta-commentary in your output. Generate ONLY the README content.

Analyze the provided repository data and generate a professional README.md file that accurately reflects the actual codebase and features.`

const instructionsTemplate = `CRITICAL REQUIREMENTS:

1. ANALYZE THE ACTUAL FILE STRUCTURE - Look at the files listed and understand what this project does
2. GENERATE CONTENT BASED ON REAL FILES - Only mention features that exist in the file structure
3. USE THE ACTUAL PROJECT NAME - Use "%[1]s" throughout, not generic placeholders
4. CREATE MEANINGFUL CONTENT - Describe what the actual files do based on their names
5. AVOID GENERIC TEMPLATES - Make it specific to this exact repository
6. INCLUDE REAL EXAMPLES - Show how to run the actual files present
7. DESCRIBE ACTUAL FEATURES - Based on the file structure, explain what the project does
8. USE PROPER INSTALLATION INSTRUCTIONS - Based on the actual package manager files
9. INCLUDE REAL USAGE EXAMPLES - Show how to run the main files that exist
10. MAKE IT ENGAGING - Use the actual project name and make it interesting

BASED ON THE FILE STRUCTURE, CREATE A README THAT:

HERO SECTION:
- Use the actual project name: %[1]s
- Write a compelling description based on the file structure and project type
- Include relevant badges for the actual project

FEATURES SECTION:
- Analyze the file structure and describe what this project actually does
- List real features based on the code files present
- If it is a Python project, mention Python-specific features
- If it is a Node.js project, mention JavaScript/TypeScript features
- If it is a web project, mention web technologies used
- If it is a CLI tool, mention command-line features
- Do not make up features that do not exist

INSTALLATION:
- For Python projects: Use pip install -r requirements.txt
- For Node.js projects: Use npm install or yarn install
- For simple projects: Use git clone instructions
- Make it specific to this project setup

USAGE:
- For Python projects: Show python app.py or python main.py
- For Node.js projects: Show npm start or node index.js
- For web projects: Show how to start the development server
- For CLI tools: Show command-line usage examples with arguments
- Use the actual project name and file paths

CRITICAL OUTPUT REQUIREMENTS:
- Generate ONLY the final README.md content
- Do NOT include any thinking process, analysis, or explanations
- Do NOT include any thinking tags or similar markers
- Do NOT include any meta-commentary about what you are doing
- Start directly with the README title and content
- End with the README content only

CONTENT REQUIREMENTS:
- Do NOT generate generic content
- Base all content strictly on the files and signals listed above
- If the repository is empty or has minimal content, acknowledge that and provide appropriate guidance for contributors
- Use the detected project types (%[2]s) to guide the content generation`

// Build renders the prompt for a profile
func Build(p *Profile) string {
	name := orDefault(p.Metadata.Name, p.Repo.Name)
	name = orDefault(name, "Unknown")

	sections := []string{
		preamble,
		repositorySection(p, name),
		"Repository Structure:\n" + orDefault(p.Structure, noStructure),
		"Package.json (if available):\n" + manifestSection(p.Manifest),
		"Existing README (if any):\n" + readmeSection(p.Readme),
		analysisSection(p.Features),
		fmt.Sprintf(instructionsTemplate, name, archetypeList(p.Features)),
	}
	return joinSections(sections)
}

// joinSections separates sections by one blank line without touching their
// content, so a section that already ends in a newline gets only one more
func joinSections(sections []string) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			if strings.HasSuffix(sections[i-1], "\n") {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(s)
	}
	return b.String()
}

func repositorySection(p *Profile, name string) string {
	topics := "No topics"
	if len(p.Metadata.Topics) > 0 {
		topics = strings.Join(p.Metadata.Topics, ", ")
	}

	var b strings.Builder
	b.WriteString("Repository Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Owner: %s\n", orDefault(p.Repo.Owner, "Unknown"))
	fmt.Fprintf(&b, "- Description: %s\n", orDefault(p.Metadata.Description, "No description available"))
	fmt.Fprintf(&b, "- Primary Language: %s\n", orDefault(p.Metadata.Language, "Unknown"))
	fmt.Fprintf(&b, "- Topics: %s\n", topics)
	fmt.Fprintf(&b, "- Stars: %d\n", p.Metadata.Stars)
	fmt.Fprintf(&b, "- Forks: %d\n", p.Metadata.Forks)
	fmt.Fprintf(&b, "- License: %s", orDefault(p.Metadata.License, "Not specified"))
	return b.String()
}

// manifestSection re-indents the raw manifest, keeping its key order
func manifestSection(raw json.RawMessage) string {
	if len(raw) == 0 {
		return noManifest
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return noManifest
	}
	return out.String()
}

func readmeSection(readme string) string {
	if readme == "" {
		return noReadme
	}
	runes := []rune(readme)
	if len(runes) > readmeExcerptRunes {
		runes = runes[:readmeExcerptRunes]
	}
	return string(runes) + "..."
}

func analysisSection(fs signals.Features) string {
	var b strings.Builder
	b.WriteString("Repository Analysis:\n")
	fmt.Fprintf(&b, "- Project Type: %s\n", fs.Headline())
	fmt.Fprintf(&b, "- Detected Archetypes: %s\n", archetypeList(fs))
	fmt.Fprintf(&b, "- Has Package Manager: %s", fs.PackageManager())
	for _, f := range signals.Primitives() {
		fmt.Fprintf(&b, "\n- %s: %s", f.Label(), yesNo(fs.Has(f)))
	}
	return b.String()
}

func archetypeList(fs signals.Features) string {
	all := fs.Archetypes()
	if len(all) == 0 {
		return string(signals.Unknown)
	}
	names := make([]string, len(all))
	for i, a := range all {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
