package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

// Именованные периоды дня. Проверяются раньше числовых шаблонов.
var namedPeriods = []struct {
	word string
	hour int
}{
	{"afternoon", 15},
	{"morning", 9},
	{"evening", 18},
	{"noon", 12},
}

var (
	clockPattern    = regexp.MustCompile(`(\d{1,2}):(\d{2}) ?(am|pm)?`)
	bareHourPattern = regexp.MustCompile(`(\d{1,2})(am|pm)`)
)

// ParseTime извлекает час и минуту из сообщения.
// Порядок: именованные периоды ("afternoon" и т.п.), затем H:MM[am|pm],
// затем H[am|pm] (минуты = 0). "pm" добавляет 12 к часу, если час < 12.
func ParseTime(text string) (hour, minute int, ok bool) {
	text = strings.ToLower(text)

	for _, period := range namedPeriods {
		if strings.Contains(text, period.word) {
			return period.hour, 0, true
		}
	}

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if m[3] == "pm" && hour < 12 {
			hour += 12
		}
		if hour > 23 || minute > 59 {
			return 0, 0, false
		}
		return hour, minute, true
	}

	if m := bareHourPattern.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if m[2] == "pm" && hour < 12 {
			hour += 12
		}
		if hour > 23 {
			return 0, 0, false
		}
		return hour, 0, true
	}

	return 0, 0, false
}
