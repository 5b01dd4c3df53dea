package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/saint0x/gitreadme/pkg/github"
	"github.com/saint0x/gitreadme/pkg/readme"
	"github.com/saint0x/gitreadme/pkg/tree"
)

type inspectReport struct {
	Repository     github.RepoRef  `yaml:"repository"`
	Metadata       github.Metadata `yaml:"metadata"`
	Structure      *tree.Result    `yaml:"structure"`
	ProjectType    string          `yaml:"project_type"`
	Archetypes     []string        `yaml:"archetypes"`
	PackageManager string          `yaml:"package_manager"`
	Signals        []string        `yaml:"signals"`
	Fingerprint    string          `yaml:"prompt_fingerprint"`
}

func newInspectCommand(debug *bool) *cobra.Command {
	var showPrompt bool
	cmd := &cobra.Command{
		Use:   "inspect <repo-url>",
		Short: "Show the signals extracted from a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePipeline(*debug)
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cmd.Context(), p.env)
			defer cancel()

			analysis, err := p.svc.Analyze(ctx, args[0])
			if err != nil {
				return err
			}

			if showPrompt {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), analysis.Prompt)
				return err
			}
			return writeReport(cmd.OutOrStdout(), analysis)
		},
	}
	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "Print the synthesized prompt instead of the report")
	return cmd
}

func newReport(a *readme.Analysis) inspectReport {
	fs := a.Profile.Features

	archetypes := []string{}
	for _, kind := range fs.Archetypes() {
		archetypes = append(archetypes, string(kind))
	}

	// only the flags that are set, sorted for stable output
	set := []string{}
	for key, on := range fs.Map() {
		if on {
			set = append(set, key)
		}
	}
	sort.Strings(set)

	return inspectReport{
		Repository:     a.Profile.Repo,
		Metadata:       a.Profile.Metadata,
		Structure:      a.Walk,
		ProjectType:    string(fs.Headline()),
		Archetypes:     archetypes,
		PackageManager: fs.PackageManager(),
		Signals:        set,
		Fingerprint:    a.Fingerprint,
	}
}

func writeReport(w io.Writer, a *readme.Analysis) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newReport(a)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
