package schedule

import "sort"

// BookingUsage is a booking included in a utilisation report, together with
// the hours it contributes after clamping to the report window.
type BookingUsage struct {
	Booking
	Hours float64
}

// Report holds the utilisation of a single resource over a query window.
type Report struct {
	ResourceID int64
	Window     Interval
	TotalHours float64
	Bookings   []BookingUsage
}

// Utilisation computes the total booked hours of a resource within window,
// plus the list of bookings that contribute to the total.
//
// Each booking intersecting the window contributes its clamped overlap,
// min(End, window.End) - max(Start, window.Start), converted to fractional
// hours. Bookings fully outside the window contribute nothing and are
// excluded from the result. The contributions are additive: splitting the
// window at any point and summing the two sub-reports gives the same total.
//
// bookings is the caller-supplied snapshot for resourceID; an unknown
// resource simply has no bookings and yields an empty report.
func Utilisation(resourceID int64, window Interval, bookings []Booking) (Report, error) {
	if err := window.Validate(); err != nil {
		return Report{}, err
	}

	report := Report{ResourceID: resourceID, Window: window}
	for _, b := range bookings {
		clamped, ok := b.Interval.Clamp(window)
		if !ok {
			continue
		}
		report.Bookings = append(report.Bookings, BookingUsage{
			Booking: b,
			Hours:   clamped.Hours(),
		})
		report.TotalHours += clamped.Hours()
	}

	sort.Slice(report.Bookings, func(i, j int) bool {
		return report.Bookings[i].Interval.Start.Before(report.Bookings[j].Interval.Start)
	})

	return report, nil
}
