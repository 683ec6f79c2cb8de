package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civicradar/issueradar/internal/corpus"
	"github.com/civicradar/issueradar/internal/issue"
	"github.com/civicradar/issueradar/internal/matcher"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run a one-off duplicate search from the command line",
	Long: `Loads the corpus, then searches it for open issues similar to the
complaint given via flags. Intended for spot checks and scripting.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().String("title", "", "complaint title (required)")
	matchCmd.Flags().String("description", "", "complaint description (required)")
	matchCmd.Flags().String("category", "", "complaint category (required)")
	matchCmd.Flags().String("address", "", "complaint address with 6-digit pincode (required)")
	matchCmd.MarkFlagRequired("title")
	matchCmd.MarkFlagRequired("description")
	matchCmd.MarkFlagRequired("category")
	matchCmd.MarkFlagRequired("address")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("category")
	address, _ := cmd.Flags().GetString("address")

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

	snap, report, err := corpus.NewLoader(source, embedder).Load(ctx)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Corpus: %d issues (%d rejected)\n", snap.Len(), report.Rejected())

	query := issue.Query{
		Title:       title,
		Description: issue.DescriptionFromRaw(description),
		Category:    category,
		Address:     address,
	}

	result, err := matcher.New(embedder, cfg.TopK).FindSimilar(ctx, snap, query)
	if err != nil {
		return err
	}

	if result.NoCandidates {
		fmt.Println("No similar issues found in same category and pincode.")
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Matches)
}
