package recurrence

import (
	"strconv"
	"strings"
	"time"

	"github.com/Aidyn-B/Learning_Dashboard/internal/models"
)

const fallbackInterval = 24 * time.Hour

// Next computes a reminder's next fire time from the processing instant.
// It returns active=false for deadline reminders (and any unknown type),
// meaning the reminder fired for the last time and must be deactivated.
func Next(reminderType, frequency string, now time.Time) (next time.Time, active bool) {
	switch reminderType {
	case models.ReminderTypeDaily:
		return now.Add(24 * time.Hour), true
	case models.ReminderTypeWeekly:
		return now.Add(7 * 24 * time.Hour), true
	case models.ReminderTypeCustom:
		return now.Add(parseFrequency(frequency)), true
	default:
		return time.Time{}, false
	}
}

// parseFrequency turns a "<amount> <unit>" string such as "3 days" or
// "12 hours" into an interval. Anything malformed falls back to one day;
// a bad frequency must never stop a reminder from re-arming.
func parseFrequency(frequency string) time.Duration {
	fields := strings.Fields(strings.ToLower(frequency))
	if len(fields) != 2 {
		return fallbackInterval
	}

	amount, err := strconv.Atoi(fields[0])
	if err != nil || amount < 1 {
		return fallbackInterval
	}

	switch {
	case strings.HasPrefix(fields[1], "day"):
		return time.Duration(amount) * 24 * time.Hour
	case strings.HasPrefix(fields[1], "hour"):
		return time.Duration(amount) * time.Hour
	case strings.HasPrefix(fields[1], "week"):
		return time.Duration(amount) * 7 * 24 * time.Hour
	}
	return fallbackInterval
}
