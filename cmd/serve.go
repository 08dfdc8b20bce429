package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deltafood/delta/internal/config"
	"github.com/deltafood/delta/internal/content"
	"github.com/deltafood/delta/internal/logging"
	"github.com/deltafood/delta/internal/server"
	"github.com/deltafood/delta/internal/ui"
	"github.com/deltafood/delta/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the website server",
	Long: `Start the website server with live sessions.

With --watch and a content file, edits to the catalog are reloaded and every
open page is told to refresh.

Examples:
  delta serve                                  # Embedded catalog on :8080
  delta serve --port 3000 --host 0.0.0.0       # Listen on all interfaces
  delta serve --content content.yml --watch    # Hot reload content edits`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "Port to serve on")
	serveCmd.Flags().String("host", config.DefaultHost, "Host to bind to")
	serveCmd.Flags().StringP("content", "c", "", "Content catalog file (default is the embedded catalog)")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the content file when it changes")
	AddFlagValidation(serveCmd, "port", ValidatePort)
	AddFlagValidation(serveCmd, "content", ValidateFileExists)

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("content.path", serveCmd.Flags().Lookup("content"))
	_ = viper.BindPFlag("content.watch", serveCmd.Flags().Lookup("watch"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store, err := content.NewStore(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Content.Watch {
		fw, err := startContentWatcher(ctx, cfg, store, logger)
		if err != nil {
			return err
		}
		if fw != nil {
			defer func() {
				stop()
				if err := fw.Stop(); err != nil {
					logger.Warn(context.Background(), err, "Failed to stop content watcher")
				}
			}()
		}
	}

	srv := server.New(cfg, store, ui.DefaultRegistry(), logger)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at http://%s\n", store.Catalog().Site.Name, cfg.Addr())

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// startContentWatcher reloads store whenever the content file changes. It
// returns nil when the embedded catalog is in use, since there is nothing
// on disk to watch.
func startContentWatcher(ctx context.Context, cfg *config.Config, store *content.Store, logger logging.Logger) (*watcher.FileWatcher, error) {
	if store.Path() == "" {
		logger.Warn(ctx, nil, "Content watch requested without a content file, ignoring")
		return nil, nil
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, logger)
	if err != nil {
		return nil, err
	}
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddFilter(watcher.NoEditorTempFilter)
	fw.AddFilter(watcher.PatternFilter(cfg.Content.WatchPatterns...))
	fw.AddHandler(watcher.ContentReloader(store, logger))

	if err := fw.AddPath(store.Path()); err != nil {
		_ = fw.Stop()
		return nil, fmt.Errorf("failed to watch %s: %w", store.Path(), err)
	}

	fw.Start(ctx)
	logger.Info(ctx, "Watching content", "path", store.Path(), "patterns", cfg.Content.WatchPatterns)
	return fw, nil
}
