package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civicradar/issueradar/internal/corpus"
	"github.com/civicradar/issueradar/internal/matcher"
	mcpserver "github.com/civicradar/issueradar/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing
duplicate search over the issue corpus as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()

		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		source, err := createSourceFromConfig(ctx, cfg)
		if err != nil {
			return fmt.Errorf("creating issue source: %w", err)
		}

		manager := corpus.NewManager(corpus.NewLoader(source, embedder))
		report, err := manager.Reload(ctx)
		if err != nil {
			return fmt.Errorf("loading corpus: %w", err)
		}

		if interval, _ := cfg.RefreshEvery(); interval > 0 {
			go manager.Refresh(ctx, interval)
		}

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "issueradar MCP server started on stdio (%d issues loaded)\n", report.Accepted)

		srv := mcpserver.NewServer(manager, matcher.New(embedder, cfg.TopK))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
