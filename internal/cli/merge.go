package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polytrie/polytrie/pkg/graph"
)

// mergeOpts holds the command-line flags for the merge command.
type mergeOpts struct {
	output    string // output file path
	name      string // name for the merged lexicon
	duplicate bool   // copy nodes instead of relocating them
}

// newMergeCmd creates the merge command for combining graph files.
// Inputs are loaded independently, so relocation vs duplication only matters
// for in-process callers; the flag is kept for parity with the library API.
func newMergeCmd() *cobra.Command {
	opts := mergeOpts{}

	cmd := &cobra.Command{
		Use:   "merge [a] [b]",
		Short: "Combine two graph or manifest files into one graph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "merged.json", "output file")
	cmd.Flags().StringVar(&opts.name, "name", "", "name for the merged lexicon (default: \"a+b\")")
	cmd.Flags().BoolVar(&opts.duplicate, "duplicate", false, "copy nodes instead of relocating them")

	return cmd
}

func runMerge(ctx context.Context, pathA, pathB string, opts *mergeOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	a, err := loadLexicon(ctx, pathA)
	if err != nil {
		return err
	}
	b, err := loadLexicon(ctx, pathB)
	if err != nil {
		return err
	}
	logger.Debugf("Merging %q (%d nodes) and %q (%d nodes)",
		a.Name, a.NodeCount(), b.Name, b.NodeCount())

	if err := a.Merge(ctx, b, opts.duplicate); err != nil {
		return err
	}

	name := opts.name
	if name == "" {
		name = a.Name + "+" + b.Name
	}
	a.Name = name

	if err := graph.WriteFile(a.Graph(), opts.output); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Merged into %s", name))
	g := a.Graph()
	printStats(len(g.Nodes), len(g.Edges), false)
	printFile(opts.output)
	return nil
}
