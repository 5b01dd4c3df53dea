package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func buildRootCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "gitreadme",
		Short: "Generate README files for GitHub repositories",
		Long: `gitreadme walks a public GitHub repository, extracts project signals from
its layout and manifests, and asks an OpenAI-compatible model for a README.

Without GROQ_API_KEY (or OPENAI_API_KEY) a static template README is produced.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newServeCommand(&debug),
		newGenerateCommand(&debug),
		newInspectCommand(&debug),
		newCheckCommand(),
	)
	return cmd
}

func main() {
	if err := buildRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
