package nlu

import "strings"

// Intent — что пользователь хочет сделать со слотом
type Intent string

const (
	IntentUnset Intent = ""      // Намерение не распознано
	IntentBook  Intent = "book"  // Забронировать слот
	IntentCheck Intent = "check" // Проверить доступность
)

// Ключевые слова проверяются в этом порядке: сначала бронирование,
// потом проверка доступности. Первое совпадение выигрывает.
var (
	bookKeywords  = []string{"book", "schedule", "set up", "make an appointment"}
	checkKeywords = []string{"free", "available", "availability", "slots"}
)

// ParseIntent классифицирует сообщение по вхождению ключевых слов
func ParseIntent(text string) Intent {
	text = strings.ToLower(text)

	for _, word := range bookKeywords {
		if strings.Contains(text, word) {
			return IntentBook
		}
	}

	for _, word := range checkKeywords {
		if strings.Contains(text, word) {
			return IntentCheck
		}
	}

	return IntentUnset
}
