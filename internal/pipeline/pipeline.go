// Package pipeline normalizes, orders and filters reservation snapshots for
// the dashboard. Everything here is pure: the current date is an argument,
// not a clock read, so callers and tests control it.
package pipeline

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"reservepro/internal/domain"
)

const isoDate = "2006-01-02"

// Today returns the current calendar date in the local timezone, canonical form.
func Today() string {
	return time.Now().Format(isoDate)
}

// NormalizeDate canonicalizes a stored date value to YYYY-MM-DD. The store
// delivers dates in several historical shapes: empty, a plain ISO date, an
// ISO string with a time component, a SQL timestamp, or unix seconds.
// Normalizing an already-canonical date returns it unchanged.
func NormalizeDate(raw, today string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today
	}
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		return raw[:i]
	}
	if _, err := time.Parse(isoDate, raw); err == nil {
		return raw
	}
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t.Format(isoDate)
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).Format(isoDate)
	}
	return raw
}

// Normalize canonicalizes every date in the snapshot.
func Normalize(reservations []domain.Reservation, today string) []domain.Reservation {
	out := make([]domain.Reservation, len(reservations))
	for i, r := range reservations {
		r.Date = NormalizeDate(r.Date, today)
		out[i] = r
	}
	return out
}

// SortSchedule orders reservations ascending by (date, time). Ordinal string
// comparison is correct only because both fields are fixed-width zero-padded
// canonical forms. Ties keep arrival order.
func SortSchedule(reservations []domain.Reservation) {
	sort.SliceStable(reservations, func(i, j int) bool {
		if reservations[i].Date != reservations[j].Date {
			return reservations[i].Date < reservations[j].Date
		}
		return reservations[i].Time < reservations[j].Time
	})
}

// Filter narrows a snapshot by a free-text term: case-insensitive substring
// match on client name and table number, literal substring match on the phone
// as stored. A blank term returns the input list as-is, order included.
func Filter(reservations []domain.Reservation, term string) []domain.Reservation {
	if strings.TrimSpace(term) == "" {
		return reservations
	}
	lower := strings.ToLower(term)
	filtered := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if strings.Contains(strings.ToLower(r.ClientName), lower) ||
			strings.Contains(r.ClientPhone, term) ||
			strings.Contains(strings.ToLower(r.TableNumber), lower) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
