package tree

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/saint0x/gitreadme/pkg/log"
)

// ErrStructureUnavailable is returned when the root listing itself fails
var ErrStructureUnavailable = errors.New("repository structure unavailable")

// Lister fetches a single directory listing
type Lister interface {
	ListContents(ctx context.Context, owner, repo, path string) ([]Entry, error)
}

// Options bounds the walk
type Options struct {
	// MaxDepth is the number of directory levels listed, the root level included.
	MaxDepth int
	// MaxEntries caps the total number of rendered entries.
	MaxEntries int
	// Concurrency caps in-flight listing calls.
	Concurrency int
}

// DefaultOptions mirrors the configuration defaults
var DefaultOptions = Options{MaxDepth: 8, MaxEntries: 2000, Concurrency: 8}

// Result is a rendered structure document plus walk statistics
type Result struct {
	Document     string `yaml:"-"`
	Entries      int    `yaml:"entries"`
	Directories  int    `yaml:"directories"`
	FailedDirs   int    `yaml:"failed_directories"`
	Truncated    bool   `yaml:"truncated"`
	DepthLimited bool   `yaml:"depth_limited"`
}

// Walker materializes a remote directory tree into a structure document
type Walker struct {
	lister Lister
	logger *log.Logger
	opts   Options
}

type node struct {
	entry    Entry
	children []*node
}

// NewWalker creates a walker; zero option fields fall back to DefaultOptions
func NewWalker(lister Lister, logger *log.Logger, opts Options) *Walker {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions.MaxDepth
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultOptions.MaxEntries
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultOptions.Concurrency
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Walker{lister: lister, logger: logger, opts: opts}
}

// Walk lists owner/repo starting at root ("" for the repository root).
//
// Directories are listed level by level. All directories of one level are
// fetched concurrently and stored by index, then merged in document order, so
// the output never depends on completion order. A failing subdirectory renders
// as empty; a failing root returns ErrStructureUnavailable.
func (w *Walker) Walk(ctx context.Context, owner, repo, root string) (*Result, error) {
	rootNode := &node{entry: Entry{Path: root, Kind: Directory}}
	res := &Result{}
	var failed atomic.Int32

	level := []*node{rootNode}
	for depth := 0; len(level) > 0; depth++ {
		listings := make([][]Entry, len(level))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(w.opts.Concurrency)
		for i, n := range level {
			g.Go(func() error {
				entries, err := w.lister.ListContents(gctx, owner, repo, n.entry.Path)
				if err != nil {
					if n == rootNode {
						return fmt.Errorf("%w: %w", ErrStructureUnavailable, err)
					}
					if ctxErr := gctx.Err(); ctxErr != nil {
						return ctxErr
					}
					w.logger.Warning("Skipping %s: %v", n.entry.Path, err)
					failed.Add(1)
					return nil
				}
				SortEntries(entries)
				listings[i] = entries
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []*node
	merge:
		for i, n := range level {
			for _, e := range listings[i] {
				if res.Entries >= w.opts.MaxEntries {
					res.Truncated = true
					break merge
				}
				res.Entries++
				child := &node{entry: e}
				n.children = append(n.children, child)
				if e.Kind != Directory {
					continue
				}
				res.Directories++
				if depth+1 < w.opts.MaxDepth {
					next = append(next, child)
				} else {
					res.DepthLimited = true
				}
			}
		}
		w.logger.Debug("Level %d: %d directories listed, %d entries so far", depth, len(level), res.Entries)
		if res.Truncated {
			w.logger.Warning("Structure truncated at %d entries", res.Entries)
			break
		}
		level = next
	}

	res.FailedDirs = int(failed.Load())
	res.Document = render(rootNode)
	return res, nil
}

func render(root *node) string {
	var b strings.Builder
	writeChildren(&b, root, 0)
	return b.String()
}

// writeChildren emits one line per entry, indented two spaces per depth level
func writeChildren(b *strings.Builder, n *node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range n.children {
		b.WriteString(indent)
		if c.entry.Kind == Directory {
			fmt.Fprintf(b, "%s %s/\n", DirectoryIcon, c.entry.Name)
			writeChildren(b, c, depth+1)
			continue
		}
		fmt.Fprintf(b, "%s %s\n", FileIcon(c.entry.Name), c.entry.Name)
	}
}
