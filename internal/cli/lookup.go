package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polytrie/polytrie/internal/lexicon"
	"github.com/polytrie/polytrie/pkg/graph"
)

// lookupOpts holds the command-line flags for the lookup command.
type lookupOpts struct {
	prefix bool // treat the query as a prefix and list completions
}

// newLookupCmd creates the lookup command for resolving queries.
// The input may be a built graph file or a manifest; manifests are built on
// the fly.
func newLookupCmd() *cobra.Command {
	opts := lookupOpts{}

	cmd := &cobra.Command{
		Use:   "lookup [file] [query]",
		Short: "Resolve a query against a graph or manifest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.prefix, "prefix", "p", false, "list all entries under the query prefix")

	return cmd
}

// loadLexicon loads a lexicon from a graph JSON file or a manifest, chosen by
// file extension.
func loadLexicon(ctx context.Context, path string) (*lexicon.Lexicon, error) {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		g, err := graph.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return lexicon.FromGraph(g)
	}

	m, _, err := lexicon.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return lexicon.Build(ctx, m)
}

func runLookup(ctx context.Context, path, query string, opts *lookupOpts) error {
	logger := loggerFromContext(ctx)

	lex, err := loadLexicon(ctx, path)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded lexicon %q: %d nodes", lex.Name, lex.NodeCount())

	if opts.prefix {
		completions, err := lex.Completions(ctx, query)
		if err != nil {
			return err
		}
		if len(completions) == 0 {
			printInfo("No entries under %q", query)
			return nil
		}
		for _, c := range completions {
			printKeyValue(c.Key, c.Value)
		}
		printDetail("%d entries", len(completions))
		return nil
	}

	value, found, err := lex.Lookup(ctx, query)
	if err != nil {
		return err
	}
	if !found {
		printInfo("No entry for %q", query)
		return fmt.Errorf("not found: %s", query)
	}
	printKeyValue(query, value)
	return nil
}
