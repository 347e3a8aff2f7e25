package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polytrie/polytrie/pkg/render/dot"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// vizOpts holds the command-line flags for the viz command.
type vizOpts struct {
	output   string // output file path
	format   string // output format: "svg" or "dot"
	values   bool   // include values in node labels
	showRoot bool   // include the sentinel root node
}

// newVizCmd creates the viz command for rendering diagrams.
func newVizCmd() *cobra.Command {
	opts := vizOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "viz [file]",
		Short: "Render a graph as a DOT or SVG diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatDOT && opts.format != formatSVG {
				return fmt.Errorf("invalid format: %s (must be 'svg' or 'dot')", opts.format)
			}
			return runViz(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with new extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.values, "values", false, "include values in node labels")
	cmd.Flags().BoolVar(&opts.showRoot, "show-root", false, "include the sentinel root node")

	return cmd
}

func runViz(ctx context.Context, input string, opts *vizOpts) error {
	logger := loggerFromContext(ctx)

	lex, err := loadLexicon(ctx, input)
	if err != nil {
		return err
	}

	d := dot.ToDOT(lex.Graph(), dot.Options{Values: opts.values, ShowRoot: opts.showRoot})

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(d)
	case formatSVG:
		logger.Info("Rendering SVG")
		data, err = dot.RenderSVG(d)
		if err != nil {
			return err
		}
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	printSuccess("Rendered %s", lex.Name)
	printFile(outputPath)
	return nil
}
