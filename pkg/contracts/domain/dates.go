package domain

import "time"

// ReportDateLayout is how the PWA device prints dates (dd/mm/yyyy), used for
// scan dates and dates of birth alike.
const ReportDateLayout = "02/01/2006"

// ParseReportDate parses a dd/mm/yyyy report date.
func ParseReportDate(s string) (time.Time, bool) {
	t, err := time.Parse(ReportDateLayout, s)
	return t, err == nil
}
