package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmreiter/planbook/internal/dateutil"
	"github.com/dmreiter/planbook/internal/schedule"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events scheduled within a date range.

If no dates are specified, lists today's events.
If only --start is specified, lists events for that single day.
If both --start and --end are specified, lists events in that range (inclusive).`,
		Example: `  planbook list
  planbook list --start=2026-09-01
  planbook list --start=2026-09-01 --end=2026-09-07`,
		RunE: func(_ *cobra.Command, _ []string) error {
			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}
			from, to := dateRange.Bounds()
			window := schedule.Interval{Start: from, End: to}

			events, err := a.repo.ListEvents(context.Background())
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			maxName := termWidth() - 40
			if maxName < 20 {
				maxName = 20
			}

			// Print events grouped by date
			var currentDate string
			var shown int
			for _, e := range events {
				if !e.Interval().Overlaps(window) {
					continue
				}
				shown++

				date := e.Start.Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					colorHeader.Printf("=== %s ===\n", date)
					currentDate = date
				}

				fmt.Printf("  #%d %s-%s %s\n",
					e.ID,
					e.Start.Format("15:04"),
					e.End.Format("15:04"),
					truncate(e.Name, maxName),
				)
				if e.Description != "" {
					colorMuted.Printf("      %s\n", truncate(e.Description, maxName))
				}
			}

			if shown == 0 {
				fmt.Println("No events found in the specified date range.")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

func (a *App) resourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List all resources",
		RunE: func(_ *cobra.Command, _ []string) error {
			resources, err := a.repo.ListResources(context.Background())
			if err != nil {
				return fmt.Errorf("listing resources: %w", err)
			}

			if len(resources) == 0 {
				fmt.Println("No resources found.")
				return nil
			}

			for _, r := range resources {
				fmt.Printf("  #%-4d %-13s %s\n", r.ID, formatCategory(string(r.Category)), r.Name)
			}

			return nil
		},
	}
}
