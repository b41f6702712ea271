package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmreiter/planbook/internal/dateutil"
	"github.com/dmreiter/planbook/internal/schedule"
)

func (a *App) reportCmd() *cobra.Command {
	var (
		resourceID int64
		startDate  string
		endDate    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show resource utilisation for a date range",
		Long: `Report the total booked hours of a resource within a date range,
clamped to the range, together with the bookings that contribute.

If no dates are specified, reports today's utilisation.`,
		Example: `  planbook report --resource=3
  planbook report --resource=3 --start=2026-09-01 --end=2026-09-30`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			resource, err := a.repo.GetResource(ctx, resourceID)
			if err != nil {
				return fmt.Errorf("loading resource: %w", err)
			}
			if resource == nil {
				return fmt.Errorf("resource %d: %w", resourceID, schedule.ErrResourceNotFound)
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}
			from, to := dateRange.Bounds()

			window, err := schedule.NewInterval(from, to)
			if err != nil {
				return err
			}

			bookings, err := a.repo.ListBookingsByResourceInRange(ctx, resourceID, window.Start, window.End)
			if err != nil {
				return fmt.Errorf("listing bookings: %w", err)
			}

			report, err := schedule.Utilisation(resourceID, window, bookings)
			if err != nil {
				return err
			}

			colorHeader.Printf("Utilisation for %s %s\n", formatCategory(string(resource.Category)), resource.Name)
			colorMuted.Printf("%s to %s\n\n",
				dateRange.Start.Format("2006-01-02"),
				dateRange.End.Format("2006-01-02"),
			)

			if len(report.Bookings) == 0 {
				fmt.Println("No bookings in the specified date range.")
				return nil
			}

			maxName := termWidth() - 45
			if maxName < 20 {
				maxName = 20
			}

			for _, b := range report.Bookings {
				fmt.Printf("  %s  %s-%s  %5.2fh  %s\n",
					b.Interval.Start.Format("2006-01-02"),
					b.Interval.Start.Format("15:04"),
					b.Interval.End.Format("15:04"),
					b.Hours,
					truncate(b.EventName, maxName),
				)
			}

			fmt.Println()
			colorStats.Printf("Total: %.2f hours across %d bookings\n", report.TotalHours, len(report.Bookings))

			return nil
		},
	}

	cmd.Flags().Int64Var(&resourceID, "resource", 0, "Resource ID (required)")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	_ = cmd.MarkFlagRequired("resource")

	return cmd
}
