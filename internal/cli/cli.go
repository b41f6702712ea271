// Package cli provides the planbook command surface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmreiter/planbook/internal/config"
	"github.com/dmreiter/planbook/internal/schedule"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   schedule.Repository
	config *config.Config
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "planbook",
		Short: "Schedule events and allocate shared resources",
		Long: `Planbook schedules events and allocates shared resources such as
rooms, instructors and equipment.

It detects booking conflicts before they happen and reports resource
utilisation over any date range. Run "planbook serve" to start the HTTP API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.resourcesCmd())
	a.root.AddCommand(a.reportCmd())
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.configCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("planbook %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
