package server

import (
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dmreiter/planbook/internal/schedule"
)

// handleScheduleICS exports a resource's bookings as an iCalendar feed so
// they can be subscribed to from calendar clients. Optional start/end query
// parameters narrow the exported range.
func (s *Server) handleScheduleICS(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resource, err := s.repo.GetResource(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if resource == nil {
		s.writeDomainError(w, schedule.ErrResourceNotFound)
		return
	}

	var bookings []schedule.Booking
	startRaw := r.URL.Query().Get("start")
	endRaw := r.URL.Query().Get("end")
	if startRaw != "" && endRaw != "" {
		start, err := parseRangeParam(startRaw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "start: "+err.Error())
			return
		}
		end, err := parseRangeParam(endRaw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "end: "+err.Error())
			return
		}
		window, err := schedule.NewInterval(start, end)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		bookings, err = s.repo.ListBookingsByResourceInRange(r.Context(), id, window.Start, window.End)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
	} else {
		bookings, err = s.repo.ListBookingsByResource(r.Context(), id)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//planbook//schedule//EN")
	cal.SetName(resource.Name)

	now := time.Now().UTC()
	for _, b := range bookings {
		ev := cal.AddEvent(fmt.Sprintf("booking-%d@planbook", b.AllocationID))
		ev.SetDtStampTime(now)
		ev.SetStartAt(b.Interval.Start)
		ev.SetEndAt(b.Interval.End)
		ev.SetSummary(b.EventName)
		ev.SetLocation(resource.Name)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "schedule.ics"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(cal.Serialize())); err != nil {
		s.logger.Error("writing ics response", "error", err)
	}
}
