package service

import (
	"fmt"
	"slices"
	"time"

	"campus-commerce/internal/model"
)

// CatalogVisible decides whether a catalog is purchasable by the given
// school at the given instant. Pure function of catalog + school + clock;
// visibility is always recomputed, never stored.
//
// Rules short-circuit in order: school scope first, then the visibility
// window. Unknown visibility modes fail closed.
func CatalogVisible(catalog *model.Catalog, schoolID string, now time.Time) bool {
	if len(catalog.SchoolIDs) > 0 && !slices.Contains(catalog.SchoolIDs, schoolID) {
		return false
	}

	switch catalog.Visibility {
	case model.VisibilityPermanent:
		return true
	case model.VisibilityDateRange:
		if catalog.StartDate != nil && now.Before(startOfDay(*catalog.StartDate)) {
			return false
		}
		if catalog.EndDate != nil && now.After(endOfDay(*catalog.EndDate)) {
			return false
		}
		return true
	case model.VisibilityScheduled:
		start, err := todayAt(catalog.StartTime, now)
		if err != nil {
			return false
		}
		end, err := todayAt(catalog.EndTime, now)
		if err != nil {
			return false
		}
		return !now.Before(start) && !now.After(end)
	default:
		return false
	}
}

// ValidateCatalogWindow rejects catalog configurations the evaluator
// cannot answer correctly. Scheduled windows crossing midnight are
// unsupported and must be refused at creation time.
func ValidateCatalogWindow(catalog *model.Catalog) error {
	if catalog.Visibility != model.VisibilityScheduled {
		return nil
	}
	start, err := todayAt(catalog.StartTime, time.Now())
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", catalog.StartTime, err)
	}
	end, err := todayAt(catalog.EndTime, time.Now())
	if err != nil {
		return fmt.Errorf("invalid end time %q: %w", catalog.EndTime, err)
	}
	if end.Before(start) {
		return fmt.Errorf("scheduled window %s-%s crosses midnight, which is not supported",
			catalog.StartTime, catalog.EndTime)
	}
	return nil
}

// todayAt builds today's instant for an "HH:MM" wall-clock string, in
// now's location.
func todayAt(hhmm string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location()), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
