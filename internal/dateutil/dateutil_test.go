package dateutil

import (
	"testing"
	"time"
)

func TestDayKey_StableAcrossDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 0, 0, 1, 0, time.Local)
	night := time.Date(2026, 3, 14, 23, 59, 59, 0, time.Local)

	if DayKey(morning) != DayKey(night) {
		t.Errorf("keys differ for same day: %q vs %q", DayKey(morning), DayKey(night))
	}
	if DayKey(morning) != "2026-03-14" {
		t.Errorf("DayKey = %q, want 2026-03-14", DayKey(morning))
	}

	nextDay := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	if DayKey(night) == DayKey(nextDay) {
		t.Error("distinct days produced the same key")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 1, 31, 8, 0, 0, 0, time.Local)
	b := time.Date(2026, 1, 31, 22, 30, 0, 0, time.Local)
	c := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)

	if !SameDay(a, b) {
		t.Error("SameDay(a, b) = false, want true")
	}
	if SameDay(b, c) {
		t.Error("SameDay(b, c) = true, want false")
	}
}

func TestDayBounds(t *testing.T) {
	now := time.Date(2026, 6, 10, 15, 45, 0, 0, time.Local)

	start, end := DayBounds(now, 0)
	if !start.Equal(time.Date(2026, 6, 10, 0, 0, 0, 0, time.Local)) {
		t.Errorf("start = %v, want local midnight of June 10", start)
	}
	if !end.Equal(time.Date(2026, 6, 11, 0, 0, 0, 0, time.Local)) {
		t.Errorf("end = %v, want local midnight of June 11", end)
	}

	start, end = DayBounds(now, 3)
	if !start.Equal(time.Date(2026, 6, 7, 0, 0, 0, 0, time.Local)) {
		t.Errorf("start = %v, want local midnight of June 7", start)
	}
	if !end.Equal(time.Date(2026, 6, 8, 0, 0, 0, 0, time.Local)) {
		t.Errorf("end = %v, want local midnight of June 8", end)
	}
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2026, 3, 3, 12, 0, 0, 0, time.Local)

	keys := LastNDays(now, 5)
	want := []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02", "2026-03-03"}

	if len(keys) != len(want) {
		t.Fatalf("len = %d, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	if got := LastNDays(now, 0); got != nil {
		t.Errorf("LastNDays(now, 0) = %v, want nil", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{
			name: "same day",
			a:    time.Date(2026, 5, 1, 23, 0, 0, 0, time.Local),
			b:    time.Date(2026, 5, 1, 1, 0, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "consecutive days",
			a:    time.Date(2026, 5, 2, 0, 30, 0, 0, time.Local),
			b:    time.Date(2026, 5, 1, 23, 30, 0, 0, time.Local),
			want: 1,
		},
		{
			name: "across month boundary",
			a:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local),
			b:    time.Date(2026, 2, 27, 12, 0, 0, 0, time.Local),
			want: 3,
		},
		{
			name: "negative difference",
			a:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local),
			b:    time.Date(2026, 5, 4, 0, 0, 0, 0, time.Local),
			want: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2026-06-10 is a Wednesday
	wed := time.Date(2026, 6, 10, 14, 0, 0, 0, time.Local)
	monday := StartOfWeek(wed)
	if !monday.Equal(time.Date(2026, 6, 8, 0, 0, 0, 0, time.Local)) {
		t.Errorf("StartOfWeek = %v, want Monday June 8 midnight", monday)
	}

	// Sunday belongs to the week that started the previous Monday
	sun := time.Date(2026, 6, 14, 9, 0, 0, 0, time.Local)
	if !StartOfWeek(sun).Equal(monday) {
		t.Errorf("StartOfWeek(sunday) = %v, want %v", StartOfWeek(sun), monday)
	}

	mon := time.Date(2026, 6, 8, 0, 0, 0, 0, time.Local)
	if !StartOfWeek(mon).Equal(mon) {
		t.Errorf("StartOfWeek(monday) = %v, want itself", StartOfWeek(mon))
	}
}

func TestParseDayKey_RoundTrip(t *testing.T) {
	now := time.Date(2026, 12, 31, 18, 0, 0, 0, time.Local)
	key := DayKey(now)

	parsed, err := ParseDayKey(key)
	if err != nil {
		t.Fatalf("ParseDayKey error: %v", err)
	}
	if !SameDay(parsed, now) {
		t.Errorf("parsed %v is not on the same day as %v", parsed, now)
	}
}
