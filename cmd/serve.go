package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/civicradar/issueradar/internal/assist"
	"github.com/civicradar/issueradar/internal/corpus"
	"github.com/civicradar/issueradar/internal/db"
	"github.com/civicradar/issueradar/internal/loadlog"
	"github.com/civicradar/issueradar/internal/matcher"
	"github.com/civicradar/issueradar/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the duplicate-detection HTTP server",
	Long: `Loads all open issues from the issue store, embeds them, and serves the
duplicate-search API. The corpus can be refreshed on demand via POST
/api/reload or on a schedule via refresh_interval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		source, err := createSourceFromConfig(ctx, cfg)
		if err != nil {
			return fmt.Errorf("creating issue source: %w", err)
		}

		manager := corpus.NewManager(corpus.NewLoader(source, embedder))

		// Open database for load history.
		dbPath := filepath.Join(cfg.DataDir, "issueradar.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		loadStore := loadlog.NewStore(database)

		// Every reload lands in the history, including scheduled
		// refreshes and POST /api/reload.
		manager.OnReload(func(ctx context.Context, report *corpus.Report) {
			if err := loadStore.Record(ctx, report); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: recording load report: %v\n", err)
			}
		})

		// Initial load.
		report, err := manager.Reload(ctx)
		if err != nil {
			return fmt.Errorf("initial corpus load: %w", err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, manager, matcher.New(embedder, cfg.TopK))

		loadlog.RegisterRoutes(srv.Router(), loadStore)

		// Assistant endpoints, when a chat provider is configured.
		if cfg.Provider != "" {
			llmProvider, err := createLLMProviderFromConfig(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: assistant endpoints disabled: %v\n", err)
			} else {
				knowledge, err := loadKnowledge(cfg)
				if err != nil {
					return err
				}
				assist.RegisterRoutes(srv.Router(), assist.NewService(llmProvider, cfg.Model, knowledge))
			}
		}

		// Scheduled reloads.
		if interval, _ := cfg.RefreshEvery(); interval > 0 {
			go manager.Refresh(ctx, interval)
		}

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "issueradar v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Corpus: %d issues (%d rejected), model %s\n",
			report.Accepted, report.Rejected(), report.Model)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
