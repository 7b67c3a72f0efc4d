package league

import "time"

// DeriveStatus classifies an event by its date window relative to now:
// upcoming before start_date, active within [start_date, end_date] inclusive
// (open-ended when end_date is null), completed after.
func DeriveStatus(startDate string, endDate *string, now time.Time) string {
	today := now.Format(DateLayout)

	if today < startDate {
		return StatusUpcoming
	}
	if endDate == nil || today <= *endDate {
		return StatusActive
	}
	return StatusCompleted
}
