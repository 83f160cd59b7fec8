package season

import (
	"testing"
	"time"
)

func TestFromMonth(t *testing.T) {
	cases := map[time.Month]Season{
		time.January:   Winter,
		time.February:  Winter,
		time.March:     Summer,
		time.April:     Summer,
		time.May:       Summer,
		time.June:      Monsoon,
		time.July:      Monsoon,
		time.August:    Monsoon,
		time.September: Monsoon,
		time.October:   PostMonsoon,
		time.November:  PostMonsoon,
		time.December:  Winter,
	}
	for m, want := range cases {
		if got := FromMonth(m); got != want {
			t.Fatalf("month %s: expected %s, got %s", m, want, got)
		}
	}
}

func TestAtUsesTimestampMonth(t *testing.T) {
	ts := time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)
	if got := At(ts); got != Monsoon {
		t.Fatalf("expected Monsoon, got %s", got)
	}
}

func TestFromMonthOutOfRangeFallsThrough(t *testing.T) {
	if got := FromMonth(time.Month(13)); got != PostMonsoon {
		t.Fatalf("expected Post-Monsoon for out-of-range month, got %s", got)
	}
}
