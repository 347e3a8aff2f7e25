package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/polytrie/polytrie/internal/lexicon"
	"github.com/polytrie/polytrie/pkg/cache"
	"github.com/polytrie/polytrie/pkg/graph"
	"github.com/polytrie/polytrie/pkg/observability"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output   string        // output file path (default: manifest base + .json)
	noCache  bool          // bypass the build cache
	cacheTTL time.Duration // cache entry lifetime (0 = forever)
}

// newBuildCmd creates the build command for compiling manifests.
// The manifest is hashed and the resulting graph cached, so rebuilding an
// unchanged manifest is a cache hit.
func newBuildCmd() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build [manifest]",
		Short: "Compile a manifest into a trie graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: manifest name with .json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the build cache")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", 0, "cache entry lifetime (0 = forever)")

	return cmd
}

// runBuild loads the manifest, builds (or fetches from cache) the graph, and
// writes it to the output file.
func runBuild(ctx context.Context, manifestPath string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, raw, err := lexicon.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded manifest %q: %d entries", m.Name, len(m.Entries))

	format, err := lexicon.FormatForPath(manifestPath)
	if err != nil {
		return err
	}

	c := newCache(opts.noCache)
	defer c.Close()
	key := cache.NewDefaultKeyer().GraphKey(cache.Hash(raw), cache.GraphKeyOpts{Format: format})

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		logger.Debugf("Cache read failed: %v", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "graph")
	} else {
		observability.Cache().OnCacheMiss(ctx, "graph")

		sp := newSpinnerWithContext(ctx, fmt.Sprintf("Building %s", m.Name))
		sp.Start()
		lex, err := lexicon.Build(ctx, m)
		if err != nil {
			sp.StopWithError(fmt.Sprintf("Build failed: %v", err))
			return err
		}
		data, err = graph.Marshal(lex.Graph())
		sp.Stop()
		if err != nil {
			return err
		}

		if err := c.Set(ctx, key, data, opts.cacheTTL); err != nil {
			logger.Debugf("Cache write failed: %v", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(manifestPath, filepath.Ext(manifestPath)) + ".json"
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Built %s from %d entries", m.Name, len(m.Entries)))
	printStats(len(g.Nodes), len(g.Edges), hit)
	printFile(outputPath)
	printNextStep("Inspect it", fmt.Sprintf("%s dump %s", appName, outputPath))
	return nil
}
