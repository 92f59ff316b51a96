package format

import (
	"strconv"
	"time"
)

const (
	// AggregateMarker is shown when a row has no first-donation timestamp.
	AggregateMarker = "в сумме"
	// LessThanMonth is shown when less than one calendar month has passed.
	LessThanMonth = "меньше месяца"
)

// Plural picks the Russian plural form for n: one (1, 21, 101), few (2-4, 22-24)
// or many (0, 5-20, 25-30, 111).
func Plural(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	mod10, mod100 := n%10, n%100
	if mod100 >= 11 && mod100 <= 19 {
		return many
	}
	switch mod10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	}
	return many
}

// DurationSince renders the calendar time between first and now, e.g. "3 года 2 месяца".
func DurationSince(first *time.Time, now time.Time) string {
	if first == nil {
		return AggregateMarker
	}
	years, months := CalendarDiff(*first, now)
	if years == 0 && months == 0 {
		return LessThanMonth
	}
	out := ""
	if years > 0 {
		out = strconv.Itoa(years) + " " + Plural(years, "год", "года", "лет")
	}
	if months > 0 {
		if out != "" {
			out += " "
		}
		out += strconv.Itoa(months) + " " + Plural(months, "месяц", "месяца", "месяцев")
	}
	return out
}

// CalendarDiff returns whole years and remaining months from start to end. A month
// only counts once its day-of-month and clock time have been reached.
func CalendarDiff(start, end time.Time) (years, months int) {
	end = end.In(start.Location())
	if end.Before(start) {
		return 0, 0
	}
	total := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() || (end.Day() == start.Day() && clock(end) < clock(start)) {
		total--
	}
	if total < 0 {
		total = 0
	}
	return total / 12, total % 12
}

func clock(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}
