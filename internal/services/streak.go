package services

import "time"

// streakLookbackDays bounds how much progress history the streak calculation
// loads. One day beyond the largest streak milestone is enough.
const streakLookbackDays = 101

// StreakFromDates computes the learning streak: the number of consecutive
// calendar days, ending today or yesterday, with at least one progress log.
// A streak broken before yesterday is zero. Dates may arrive in any order.
func StreakFromDates(dates []time.Time, now time.Time) int {
	days := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		days[startOfDay(d)] = true
	}

	day := startOfDay(now)
	if !days[day] {
		day = day.AddDate(0, 0, -1)
		if !days[day] {
			return 0
		}
	}

	streak := 0
	for days[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
