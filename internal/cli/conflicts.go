package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmreiter/planbook/internal/schedule"
)

func (a *App) conflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "List booking pairs that overlap on a shared resource",
		Long: `Scan all allocations and list every pair of bookings that overlap
on the same resource.

Scheduling normally rejects conflicts, so anything reported here was
written before conflict checking or directly in the database.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			bookings, err := a.repo.ListAllBookings(ctx)
			if err != nil {
				return fmt.Errorf("listing bookings: %w", err)
			}

			pairs := schedule.AuditConflicts(bookings)
			if len(pairs) == 0 {
				fmt.Println("No conflicts found.")
				return nil
			}

			resources, err := a.repo.ListResources(ctx)
			if err != nil {
				return fmt.Errorf("listing resources: %w", err)
			}
			names := make(map[int64]string, len(resources))
			for _, r := range resources {
				names[r.ID] = r.Name
			}

			maxName := termWidth() - 30
			if maxName < 20 {
				maxName = 20
			}

			var currentResource int64 = -1
			for _, p := range pairs {
				if p.ResourceID != currentResource {
					if currentResource != -1 {
						fmt.Println()
					}
					colorHeader.Printf("=== #%d %s ===\n", p.ResourceID, names[p.ResourceID])
					currentResource = p.ResourceID
				}
				fmt.Printf("  %s %s  overlaps  %s %s\n",
					p.First.Interval.Start.Format("2006-01-02 15:04"),
					truncate(p.First.EventName, maxName/2),
					p.Second.Interval.Start.Format("2006-01-02 15:04"),
					truncate(p.Second.EventName, maxName/2),
				)
			}

			fmt.Println()
			fmt.Printf("%d conflicting pairs found.\n", len(pairs))
			return nil
		},
	}
}
