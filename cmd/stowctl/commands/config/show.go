package config

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/internal/cli/output"
	"github.com/marmos91/stowfs/pkg/config"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the configuration stowctl would use, after merging the
config file, environment variables, and defaults.

Examples:
  # Show as YAML
  stowctl config show

  # Show as JSON
  stowctl config show --format json`,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().StringVar(&showOutput, "format", "yaml", "Output format (yaml|json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	// Get config path from the root command's persistent flag
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(showOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, cfg)
	default:
		return output.PrintYAML(os.Stdout, cfg)
	}
}
