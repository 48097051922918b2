package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/stowfs/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with defaults",
	Long: `Create a configuration file populated with default values.

Without --config the file is created at the default location
($XDG_CONFIG_HOME/stowfs/config.yaml).

Examples:
  # Create config at the default location
  stowctl config init

  # Create config at a custom path
  stowctl config init --config /etc/stowfs/config.yaml

  # Overwrite an existing file
  stowctl config init --force`,
	RunE: runConfigInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
	}

	cfg := config.GetDefaultConfig()
	if err := config.SaveConfig(cfg, configPath); err != nil {
		return err
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to pick a storage backend")
	fmt.Println("  2. Verify the backend with: stowctl check")
	return nil
}
