package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmreiter/planbook/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("Config file: %s\n\n", config.DefaultConfigPath())
			printConfig(a.config)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists: %s", path)
			}

			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	})

	return cmd
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[server]")
	fmt.Printf("  addr             = %s\n", cfg.Server.Addr)
	fmt.Printf("  shutdown_seconds = %d\n", cfg.Server.ShutdownSeconds)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[log]")
	fmt.Printf("  level            = %s\n", cfg.Log.Level)
	fmt.Printf("  format           = %s\n", cfg.Log.Format)
}
