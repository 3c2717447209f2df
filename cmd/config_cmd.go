package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/finmock/internal/config"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("# Config file: %s\n", configPath())
	if config.Exists(configPath()) {
		fmt.Printf("# Status: loaded from %s\n", source)
	} else {
		fmt.Println("# Status: using defaults (no config file)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("# Warning: %v\n", err)
	}
	fmt.Println()

	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	fmt.Println()
	fmt.Println("# Run `finmock setup` to reconfigure.")
	return nil
}
