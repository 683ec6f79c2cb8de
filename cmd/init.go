package cmd

import (
	"github.com/spf13/cobra"

	"github.com/civicradar/issueradar/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize issueradar configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the service and generates a .issueradar.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
