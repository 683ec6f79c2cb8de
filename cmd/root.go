package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "issueradar",
	Short: "Duplicate detection for civic complaints",
	Long: `issueradar finds previously reported, still-open civic complaints that
likely describe the same real-world issue as a new report, so duplicates
can be merged and upvoted instead of creating redundant tickets. It
pre-filters by category and postal code, then ranks candidates by
sentence-embedding similarity.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".issueradar.yml", "config file path")
}
