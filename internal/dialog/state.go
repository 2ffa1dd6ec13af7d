package dialog

import (
	"time"

	"github.com/siddugarlapati/Tailor-talk/internal/nlu"
)

// Prompt — какой вопрос ассистент задал последним.
// Определяет, как интерпретировать следующее сообщение пользователя.
type Prompt string

const (
	PromptNone    Prompt = ""        // Вопрос не задан
	PromptDate    Prompt = "date"    // Ждём дату
	PromptTime    Prompt = "time"    // Ждём время
	PromptConfirm Prompt = "confirm" // Ждём да/нет
)

// State — состояние slot-filling диалога одного чата.
// Поля заполняются по мере того, как удаётся извлечь их из сообщений.
// Инварианты: Confirmed == true только когда все четыре поля заполнены;
// Prompt == PromptConfirm только когда всё заполнено, но Confirmed == false.
type State struct {
	Intent    nlu.Intent
	Date      *time.Time // Только дата, полночь в настроенной таймзоне
	Hour      *int
	Minute    *int
	Confirmed bool
	Prompt    Prompt
}

// NewState возвращает чистое состояние: ничего не заполнено, вопрос не задан
func NewState() *State {
	return &State{}
}

// Reset возвращает состояние к начальному
func (s *State) Reset() {
	*s = State{}
}

// DateResolved сообщает, извлечена ли дата
func (s *State) DateResolved() bool {
	return s.Date != nil
}

// TimeResolved сообщает, извлечены ли час и минута (только вместе)
func (s *State) TimeResolved() bool {
	return s.Hour != nil && s.Minute != nil
}

// AllResolved сообщает, заполнены ли все поля, нужные для действия
func (s *State) AllResolved() bool {
	return s.Intent != nlu.IntentUnset && s.DateResolved() && s.TimeResolved()
}

// StartTime собирает дату и время слота в один момент времени.
// Вызывать можно только когда AllResolved() == true.
func (s *State) StartTime() time.Time {
	d := *s.Date
	return time.Date(d.Year(), d.Month(), d.Day(), *s.Hour, *s.Minute, 0, 0, d.Location())
}
