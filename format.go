package taskflow

import "time"

// FormatDate renders an ISO-8601 timestamp as, e.g., "Mar 7, 2025". Missing timestamps render as "N/A"
// and malformed ones as "Invalid date", so that displaying a todo never fails.
func FormatDate(value string) string {
	if value == "" {
		return "N/A"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return "Invalid date"
}
