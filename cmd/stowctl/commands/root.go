// Package commands implements the CLI commands for stowctl.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	configcmd "github.com/marmos91/stowfs/cmd/stowctl/commands/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile      string
	outputFormat string
	noColor      bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stowctl",
	Short: "stowctl - Storage backend command line client",
	Long: `stowctl operates on a configured storage backend through a single
path-based interface. The same commands work against the in-memory,
local filesystem, S3, and Badger backends.

Use "stowctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stowctl %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/stowfs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(cpCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(visibilityCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configcmd.Cmd)

	// Hide the default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
