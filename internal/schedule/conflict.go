package schedule

import "sort"

// FindConflicts returns the bookings among existing whose intervals overlap
// the candidate interval. The overlap rule is the half-open intersection test:
// existing.Start < candidate.End AND existing.End > candidate.Start, so
// touching endpoints never conflict.
//
// existing is expected to hold the bookings of a single resource; the caller
// fetches them first. excludeEventID skips bookings belonging to that event,
// so an edited event never conflicts with its own current slot. Pass 0 when
// creating a new event.
//
// The function is a pure predicate over its inputs: no storage access, no
// side effects. An empty existing slice yields no conflicts.
func FindConflicts(candidate Interval, existing []Booking, excludeEventID int64) []Booking {
	var conflicts []Booking
	for _, b := range existing {
		if excludeEventID != 0 && b.EventID == excludeEventID {
			continue
		}
		if candidate.Overlaps(b.Interval) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// HasConflict reports whether any existing booking overlaps the candidate
// interval. See FindConflicts for the rule.
func HasConflict(candidate Interval, existing []Booking, excludeEventID int64) bool {
	return len(FindConflicts(candidate, existing, excludeEventID)) > 0
}

// ConflictPair is two bookings of the same resource whose intervals overlap.
// First always starts at or before Second.
type ConflictPair struct {
	ResourceID int64
	First      Booking
	Second     Booking
}

// AuditConflicts scans a snapshot of bookings across all resources and
// returns every pair that overlaps on a shared resource, using the same
// half-open rule as FindConflicts. The write path rejects conflicting
// allocations up front, so a non-empty result points at data that predates
// the checks or was written around them.
//
// Pairs are ordered by resource id, then by the start of the earlier booking.
func AuditConflicts(bookings []Booking) []ConflictPair {
	byResource := make(map[int64][]Booking)
	for _, b := range bookings {
		byResource[b.ResourceID] = append(byResource[b.ResourceID], b)
	}

	resourceIDs := make([]int64, 0, len(byResource))
	for rid := range byResource {
		resourceIDs = append(resourceIDs, rid)
	}
	sort.Slice(resourceIDs, func(i, j int) bool { return resourceIDs[i] < resourceIDs[j] })

	var pairs []ConflictPair
	for _, rid := range resourceIDs {
		group := byResource[rid]
		sort.Slice(group, func(i, j int) bool {
			if !group[i].Interval.Start.Equal(group[j].Interval.Start) {
				return group[i].Interval.Start.Before(group[j].Interval.Start)
			}
			return group[i].AllocationID < group[j].AllocationID
		})

		for i := range group {
			for j := i + 1; j < len(group); j++ {
				// Sorted by start, so the first booking past First's end
				// closes out all later candidates too.
				if !group[j].Interval.Start.Before(group[i].Interval.End) {
					break
				}
				pairs = append(pairs, ConflictPair{
					ResourceID: rid,
					First:      group[i],
					Second:     group[j],
				})
			}
		}
	}
	return pairs
}
