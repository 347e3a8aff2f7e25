package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/polytrie/polytrie/pkg/trie"
)

// dumpOpts holds the command-line flags for the dump command.
type dumpOpts struct {
	depth int // maximum depth to print (-1 = unbounded)
}

// newDumpCmd creates the dump command for printing trie structure.
func newDumpCmd() *cobra.Command {
	opts := dumpOpts{depth: -1}

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the trie structure as a text tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.depth, "depth", "d", -1, "maximum depth to print (-1 = unbounded)")

	return cmd
}

func runDump(ctx context.Context, path string, opts *dumpOpts) error {
	lex, err := loadLexicon(ctx, path)
	if err != nil {
		return err
	}

	name := lex.Name
	if name == "" {
		name = path
	}
	fmt.Println(StyleTitle.Render(name))
	dumpChildren(lex.Trie.Root, "", opts.depth)
	printDetail("%d nodes", lex.NodeCount())
	return nil
}

// dumpChildren prints the subtree below n with box-drawing connectors.
// Shared nodes (several parents) are annotated but printed under each parent.
func dumpChildren(n *trie.Node[string, string], indent string, depth int) {
	if depth == 0 {
		return
	}

	children := make([]*trie.Node[string, string], 0, n.ChildCount())
	for _, child := range n.Children() {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Key() < children[j].Key() })

	for i, child := range children {
		connector, childIndent := "├─ ", indent+"│  "
		if i == len(children)-1 {
			connector, childIndent = "└─ ", indent+"   "
		}

		line := indent + StyleDim.Render(connector) + StyleHighlight.Render(child.Key())
		if child.Value != "" {
			line += StyleDim.Render(" = ") + StyleValue.Render(child.Value)
		}
		if len(child.Parents()) > 1 {
			line += StyleDim.Render(" (shared)")
		}
		fmt.Println(line)

		dumpChildren(child, childIndent, depth-1)
	}
}
