package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/polytrie/polytrie/internal/lexicon"
	"github.com/polytrie/polytrie/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr  string // HTTP listen address
	watch bool   // hot-reload the lexicon on manifest changes
}

// newServeCmd creates the serve command for running the HTTP server.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080", watch: true}

	cmd := &cobra.Command{
		Use:   "serve [manifest]",
		Short: "Serve a lexicon over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "HTTP listen address")
	cmd.Flags().BoolVar(&opts.watch, "watch", opts.watch, "hot-reload the lexicon on manifest changes")

	return cmd
}

func runServe(ctx context.Context, manifestPath string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	loader, err := lexicon.NewLoader(ctx, manifestPath)
	if err != nil {
		return err
	}
	lex := loader.Lexicon()
	logger.Infof("Loaded lexicon %q: %d nodes", lex.Name, lex.NodeCount())

	if opts.watch {
		loader.OnChange(func(lex *lexicon.Lexicon) {
			logger.Infof("Reloaded lexicon %q: %d nodes", lex.Name, lex.NodeCount())
		})
		stop, err := loader.Watch(ctx)
		if err != nil {
			printWarning("Manifest watcher unavailable (hot-reload disabled): %v", err)
		} else {
			defer stop()
		}
	}

	srv := &http.Server{
		Addr:         opts.addr,
		Handler:      server.New(loader, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Serving on %s", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
