// Package dateutil provides local-calendar-day math for bucketing and
// windowing log timestamps. All functions work on calendar-day identity
// rather than fixed 86400-second arithmetic, so DST transitions with
// 23/25-hour days bucket correctly.
package dateutil

import "time"

const dayKeyLayout = "2006-01-02"

// DayKey returns a stable key identifying the local calendar day a
// timestamp falls on. Distinct days produce distinct keys; all instants
// on the same local day produce the same key.
func DayKey(t time.Time) string {
	return t.Local().Format(dayKeyLayout)
}

// ParseDayKey converts a day key back to local midnight of that day.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, time.Local)
}

// SameDay reports whether two instants fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns local midnight of the day t falls on.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// AddDays shifts t by a number of calendar days, preserving clock time.
func AddDays(t time.Time, days int) time.Time {
	lt := t.Local()
	return time.Date(lt.Year(), lt.Month(), lt.Day()+days, lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), time.Local)
}

// DayBounds returns the local midnight boundaries of the day daysAgo days
// before now: [start, end) where end is the following midnight.
func DayBounds(now time.Time, daysAgo int) (start, end time.Time) {
	start = StartOfDay(AddDays(now, -daysAgo))
	end = AddDays(start, 1)
	return start, end
}

// LastNDays returns n day keys, oldest first, ending with now's day.
func LastNDays(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, DayKey(AddDays(now, -i)))
	}
	return keys
}

// DaysBetween returns the calendar-day difference a minus b. Comparing
// UTC-pinned midnights keeps the subtraction exact across DST changes.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(au.Sub(bu).Hours() / 24)
}

// StartOfWeek returns local midnight of the Monday of the week t falls on.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return AddDays(day, -offset)
}
