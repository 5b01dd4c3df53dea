package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/saint0x/gitreadme/pkg/config"
	"github.com/saint0x/gitreadme/pkg/log"
	"github.com/saint0x/gitreadme/pkg/readme"
)

// pipeline is what the one-shot commands need from the container
type pipeline struct {
	logger *log.Logger
	svc    *readme.Service
	env    *config.Environment
}

func newGenerateCommand(debug *bool) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "generate <repo-url>",
		Short: "Generate a README for a repository and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePipeline(*debug)
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cmd.Context(), p.env)
			defer cancel()

			res, err := p.svc.Generate(ctx, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), res.Readme+"\n")
				return err
			}
			if err := os.WriteFile(output, []byte(res.Readme+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			p.logger.Success("Wrote %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the README to a file instead of stdout")
	return cmd
}

// resolvePipeline builds the service for one-shot commands. Logs go to stderr
// so stdout carries only the command output.
func resolvePipeline(debug bool) (*pipeline, error) {
	container, err := buildContainer(debug)
	if err != nil {
		return nil, err
	}
	env, err := resolve[*config.Environment](container)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := resolve[*log.Logger](container)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetOutput(os.Stderr)

	svc, err := resolve[*readme.Service](container)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}
	return &pipeline{logger: logger, svc: svc, env: env}, nil
}

// requestContext gives a one-shot command the same deadline as an HTTP request
func requestContext(parent context.Context, env *config.Environment) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, env.RequestTimeout)
}
