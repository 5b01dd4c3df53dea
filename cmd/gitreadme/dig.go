package main

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/saint0x/gitreadme/pkg/ai"
	"github.com/saint0x/gitreadme/pkg/config"
	"github.com/saint0x/gitreadme/pkg/github"
	"github.com/saint0x/gitreadme/pkg/log"
	"github.com/saint0x/gitreadme/pkg/openai"
	"github.com/saint0x/gitreadme/pkg/readme"
	"github.com/saint0x/gitreadme/pkg/server"
	"github.com/saint0x/gitreadme/pkg/tree"
)

// buildContainer registers every component of the pipeline
func buildContainer(debug bool) (*dig.Container, error) {
	container := dig.New()

	providers := []interface{}{
		config.Load,
		func(env *config.Environment) *log.Logger {
			return log.New(debug || env.Debug)
		},
		newGitHubClient,
		newWalker,
		newGenerator,
		newReadmeService,
		newServer,
	}
	for _, p := range providers {
		if err := container.Provide(p); err != nil {
			return nil, fmt.Errorf("failed to register provider: %w", err)
		}
	}
	return container, nil
}

// resolve pulls a single component out of the container
func resolve[T any](container *dig.Container) (T, error) {
	var out T
	err := container.Invoke(func(v T) { out = v })
	return out, dig.RootCause(err)
}

func newGitHubClient(logger *log.Logger, env *config.Environment) (*github.Client, error) {
	return github.New(logger, env.GitHubToken, github.WithRateLimit(env.GitHubRPS))
}

func newWalker(gh *github.Client, logger *log.Logger, env *config.Environment) *tree.Walker {
	return tree.NewWalker(gh, logger, tree.Options{
		MaxDepth:    env.WalkMaxDepth,
		MaxEntries:  env.WalkMaxEntries,
		Concurrency: env.WalkConcurrency,
	})
}

// newGenerator returns nil when no generation credential is configured
func newGenerator(logger *log.Logger, env *config.Environment) readme.Generator {
	if !env.Capabilities().Generation {
		return nil
	}
	client := openai.NewClient(env.LLMKey, env.LLMBaseURL)
	return ai.New(logger, client, env.LLMModel, env.Temperature, env.GenerationTimeout)
}

func newReadmeService(logger *log.Logger, gh *github.Client, walker *tree.Walker, gen readme.Generator, env *config.Environment) (*readme.Service, error) {
	return readme.NewService(logger, gh, walker, gen, env.Capabilities())
}

func newServer(logger *log.Logger, svc *readme.Service, env *config.Environment) (*server.Server, error) {
	return server.New(logger, svc, env)
}
