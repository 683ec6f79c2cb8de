package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/civicradar/issueradar/internal/corpus"
	"github.com/civicradar/issueradar/internal/db"
	"github.com/civicradar/issueradar/internal/loadlog"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load and classify the issue corpus once, then print the report",
	Long: `Reads every document from the issue store, classifies each as accepted
or rejected, embeds the accepted issues, and prints the load report.
Useful for checking data quality before serving.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().Bool("json", false, "print the full report as JSON")
	loadCmd.Flags().Bool("record", false, "record the report in the load history database")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	record, _ := cmd.Flags().GetBool("record")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	source, err := createSourceFromConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating issue source: %w", err)
	}

	loader := corpus.NewLoader(source, embedder)

	var bar *progressbar.ProgressBar
	loader.OnProgress(func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Classifying issues"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	})

	snap, report, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if record {
		database, err := db.Open(filepath.Join(cfg.DataDir, "issueradar.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		if err := loadlog.NewStore(database).Record(ctx, report); err != nil {
			return fmt.Errorf("recording load report: %w", err)
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Loaded %d issues into the corpus (model %s, %d dimensions)\n",
		snap.Len(), report.Model, embedder.Dimensions())
	if report.Rejected() > 0 {
		fmt.Printf("Rejected %d documents:\n", report.Rejected())
		for reason, count := range report.CountByReason() {
			fmt.Printf("  %-15s %d\n", reason, count)
		}
	}

	return nil
}
