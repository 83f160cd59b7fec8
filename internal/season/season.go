package season

import "time"

// Season is one of the four calendar-derived labels used as a soft scoring signal.
type Season string

const (
	Winter      Season = "Winter"
	Summer      Season = "Summer"
	Monsoon     Season = "Monsoon"
	PostMonsoon Season = "Post-Monsoon"
)

// FromMonth maps a calendar month to its season.
func FromMonth(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Summer
	case time.June, time.July, time.August, time.September:
		return Monsoon
	default:
		return PostMonsoon
	}
}

func At(t time.Time) Season {
	return FromMonth(t.Month())
}

func Current() Season {
	return At(time.Now())
}

func (s Season) String() string {
	return string(s)
}
