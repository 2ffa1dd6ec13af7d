package nlu

import (
	"regexp"
	"strings"
	"time"
)

// Дни недели в порядке понедельник..воскресенье.
// Индекс в слайсе используется в арифметике "через сколько дней".
var weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ParseDate извлекает дату из сообщения относительно момента now.
// Правила проверяются по порядку, первое совпадение выигрывает:
// "tomorrow", "today", "next <день>", "this <день>" или просто "<день>",
// затем литерал YYYY-MM-DD. Возвращает полночь в локации now.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	text = strings.ToLower(text)

	if strings.Contains(text, "tomorrow") {
		return truncateToDay(now.AddDate(0, 0, 1)), true
	}
	if strings.Contains(text, "today") {
		return truncateToDay(now), true
	}

	todayIdx := mondayIndex(now.Weekday())
	for i, day := range weekdays {
		if strings.Contains(text, "next "+day) {
			// Ближайший такой день минимум через 7 дней
			daysAhead := (i-todayIdx+7)%7 + 7
			return truncateToDay(now.AddDate(0, 0, daysAhead)), true
		}
		if strings.Contains(text, "this "+day) || strings.Contains(text, day) {
			// Ближайший такой день, 0 если он сегодня
			daysAhead := (i - todayIdx + 7) % 7
			return truncateToDay(now.AddDate(0, 0, daysAhead)), true
		}
	}

	if match := isoDatePattern.FindString(text); match != "" {
		date, err := time.ParseInLocation("2006-01-02", match, now.Location())
		if err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

// mondayIndex переводит time.Weekday (воскресенье = 0) в индекс
// с понедельником в нуле
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
