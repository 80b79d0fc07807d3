package listing

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/umputun/appointwatch/pkg/domain"
)

// yearPivot splits two-digit years: values below map to 20xx, values at or above to 19xx
const yearPivot = 50

// ParseItemDate parses listing date fragments like ("09", "01.26") into a calendar day.
// Stray punctuation around the month-year part is ignored. Returns false on any malformed input.
func ParseItemDate(dayText, monthYearText string) (domain.Day, bool) {
	dayText = strings.TrimSpace(dayText)
	monthYearText = strings.TrimFunc(monthYearText, func(r rune) bool { return !unicode.IsDigit(r) })

	parts := strings.FieldsFunc(monthYearText, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(parts) != 2 || dayText == "" {
		return domain.Day{}, false
	}

	day, err := strconv.Atoi(dayText)
	if err != nil {
		return domain.Day{}, false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return domain.Day{}, false
	}
	yy, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return domain.Day{}, false
	}

	year := 2000 + yy
	if yy >= yearPivot {
		year = 1900 + yy
	}

	if month < 1 || month > 12 || day < 1 {
		return domain.Day{}, false
	}
	// reject days time.Date would normalize into the next month, like 31.02
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return domain.Day{}, false
	}
	return domain.DayOf(t), true
}
