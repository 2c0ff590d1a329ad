package resources

import (
	"fmt"
	"time"
)

// NextRun returns the first time strictly after now whose wall clock in
// now's location equals at ("HH:MM", 24-hour).
func NextRun(now time.Time, at string) (time.Time, error) {
	clock, err := time.Parse("15:04", at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid daily time %q: want HH:MM", at)
	}
	candidate := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = time.Date(now.Year(), now.Month(), now.Day()+1, clock.Hour(), clock.Minute(), 0, 0, now.Location())
	}
	return candidate, nil
}
