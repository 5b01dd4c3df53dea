package readme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/saint0x/gitreadme/pkg/config"
	"github.com/saint0x/gitreadme/pkg/github"
	"github.com/saint0x/gitreadme/pkg/log"
	"github.com/saint0x/gitreadme/pkg/prompt"
	"github.com/saint0x/gitreadme/pkg/signals"
	"github.com/saint0x/gitreadme/pkg/tree"
)

// GitHubClient interface for the repository lookups
type GitHubClient interface {
	GetRepository(ctx context.Context, ref github.RepoRef) (*github.Metadata, error)
	GetReadme(ctx context.Context, ref github.RepoRef) (string, error)
	GetManifest(ctx context.Context, ref github.RepoRef) (json.RawMessage, error)
}

// Walker interface for structure rendering
type Walker interface {
	Walk(ctx context.Context, owner, repo, root string) (*tree.Result, error)
}

// Generator interface for the completion gateway
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analysis is everything computed before the generation step
type Analysis struct {
	Profile     *prompt.Profile
	Walk        *tree.Result
	Prompt      string
	Fingerprint string
}

// Result is a finished README
type Result struct {
	*Analysis
	Readme    string
	Generated bool
	Elapsed   time.Duration
}

// Service sequences one README request end to end
type Service struct {
	logger    *log.Logger
	github    GitHubClient
	walker    Walker
	generator Generator
	caps      config.Capabilities
}

// NewService wires the pipeline. generator may be nil when caps.Generation is false.
func NewService(logger *log.Logger, gh GitHubClient, walker Walker, generator Generator, caps config.Capabilities) (*Service, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if gh == nil {
		return nil, fmt.Errorf("github client is required")
	}
	if walker == nil {
		return nil, fmt.Errorf("tree walker is required")
	}
	if caps.Generation && generator == nil {
		return nil, fmt.Errorf("generator is required when generation is enabled")
	}

	return &Service{
		logger:    logger,
		github:    gh,
		walker:    walker,
		generator: generator,
		caps:      caps,
	}, nil
}

// Analyze runs validation, fetching, walking, extraction and prompt synthesis
func (s *Service) Analyze(ctx context.Context, repoURL string) (*Analysis, error) {
	logger := s.logger
	step := func(st State) { logger.Step("State: %s", st) }
	fail := func(err error) error {
		logger.Error("%s: %v", Failed, err)
		return err
	}

	step(ValidatingInput)
	if repoURL == "" {
		return nil, fail(errMissingURL)
	}
	ref, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return nil, fail(errInvalidURL)
	}
	logger = logger.WithField("repo", ref.String())

	step(FetchingMetadata)
	meta, err := s.github.GetRepository(ctx, ref)
	if err != nil {
		return nil, fail(err)
	}

	// metadata succeeded; the remaining lookups are independent
	step(WalkingTree)
	var (
		walk     *tree.Result
		readme   string
		manifest json.RawMessage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.walker.Walk(gctx, ref.Owner, ref.Name, "")
		switch {
		case err == nil:
			walk = res
		case errors.Is(err, github.ErrRateLimited):
			var upstream *github.UpstreamError
			if errors.As(err, &upstream) {
				return upstream
			}
			return err
		case gctx.Err() != nil:
			return err
		default:
			logger.Warning("Structure unavailable, continuing without it: %v", err)
			walk = &tree.Result{}
		}
		return nil
	})
	g.Go(func() error {
		text, err := s.github.GetReadme(gctx, ref)
		if err != nil {
			logger.Warning("No README found or error fetching README: %v", err)
			return nil
		}
		readme = text
		return nil
	})
	g.Go(func() error {
		raw, err := s.github.GetManifest(gctx, ref)
		if err != nil {
			logger.Warning("No package.json found or error fetching package.json: %v", err)
			return nil
		}
		manifest = raw
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fail(err)
	}
	logger.Info("Structure: %d entries, %d directories (truncated=%v)", walk.Entries, walk.Directories, walk.Truncated)

	step(ExtractingSignals)
	features := signals.Extract(walk.Document, manifest)

	step(SynthesizingPrompt)
	profile := &prompt.Profile{
		Repo:      ref,
		Metadata:  *meta,
		Readme:    readme,
		Manifest:  manifest,
		Structure: walk.Document,
		Features:  features,
	}
	text := prompt.Build(profile)

	return &Analysis{
		Profile:     profile,
		Walk:        walk,
		Prompt:      text,
		Fingerprint: prompt.Fingerprint(text),
	}, nil
}

// Generate produces a README, either from the completion backend or the fallback template
func (s *Service) Generate(ctx context.Context, repoURL string) (*Result, error) {
	start := time.Now()

	analysis, err := s.Analyze(ctx, repoURL)
	if err != nil {
		return nil, err
	}
	logger := s.logger.WithField("repo", analysis.Profile.Repo.String())

	result := &Result{Analysis: analysis}
	if s.caps.Generation {
		logger.Step("State: %s (prompt %s, %d bytes)", Generating, analysis.Fingerprint, len(analysis.Prompt))
		text, err := s.generator.Generate(ctx, analysis.Prompt)
		if err != nil {
			logger.Error("%s: %v", Failed, err)
			return nil, err
		}
		result.Readme = text
		result.Generated = true
	} else {
		logger.Warning("No generation credential configured")
		logger.Step("State: %s", UsingFallback)
		text, err := Fallback(analysis.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to render fallback README: %w", err)
		}
		result.Readme = text
	}

	result.Elapsed = time.Since(start)
	logger.Step("State: %s", Done)
	logger.Success("README ready in %s (generated=%v)", result.Elapsed.Round(time.Millisecond), result.Generated)
	return result, nil
}
