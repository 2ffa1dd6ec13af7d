package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/siddugarlapati/Tailor-talk/internal/dialog"
	"github.com/siddugarlapati/Tailor-talk/internal/model"
	"github.com/siddugarlapati/Tailor-talk/internal/nlu"
)

// Calendar — внешний календарь: проверка занятости и создание событий
type Calendar interface {
	IsSlotFree(ctx context.Context, start, end time.Time) (bool, error)
	CreateEvent(ctx context.Context, summary string, start, end time.Time, description string) (*model.CalendarEvent, error)
}

// QuestionAnswerer отвечает на сообщения без календарного намерения
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Фиксированные реплики ассистента
const (
	replyAskDate       = "For which date would you like to book or check availability?"
	replyAskTime       = "What time are you interested in? (e.g., 3pm, 14:00, afternoon)"
	replyAskYesNo      = "Please reply 'yes' to confirm or 'no' to start over."
	replyRestart       = "Okay, let's start over. What would you like to do?"
	replyUnknownAction = "I'm not sure what you want to do. Please specify if you want to check or book a slot."
	replySlotTaken     = "Sorry, that slot is already booked. Would you like to try another time?"
	replyBookingFailed = "There was an error booking your appointment. Please try again."
	replyAnswerFailed  = "Sorry, I couldn't answer that right now."
)

const (
	slotDuration     = time.Hour // Фиксированный часовой слот
	eventSummary     = "Appointment via Tailor Talk"
	eventDescription = "Booked through conversational agent."

	// Формат сводки: "Monday, July 09 at 03:00 PM"
	summaryTimeLayout = "Monday, January 02 at 03:04 PM"
)

// AgentService — slot-filling диалог: пошагово извлекает намерение,
// дату и время из сообщений, подтверждает у пользователя и только после
// явного "yes" выполняет действие в календаре.
type AgentService struct {
	sessions *dialog.Manager
	calendar Calendar
	answerer QuestionAnswerer
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time // Подменяется в тестах
}

func NewAgentService(calendar Calendar, answerer QuestionAnswerer, location *time.Location, logger *zap.Logger) *AgentService {
	return &AgentService{
		sessions: dialog.NewManager(),
		calendar: calendar,
		answerer: answerer,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleMessage обрабатывает одну реплику пользователя и всегда
// возвращает текст ответа. Ход одного чата выполняется строго
// последовательно: сессия заблокирована до конца обработки, включая
// обращения к календарю.
func (s *AgentService) HandleMessage(ctx context.Context, chatID int64, text string) string {
	session := s.sessions.Session(chatID)
	session.Lock()
	defer session.Unlock()

	state := session.State
	lower := strings.ToLower(text)

	// Ответ на вопрос подтверждения разбирается особо: "yes"/"no"
	// в этот момент — не данные, а решение
	if state.Prompt == dialog.PromptConfirm {
		return s.handleConfirmation(ctx, state, lower)
	}

	return s.advance(ctx, state, text, lower)
}

// ResetSession сбрасывает диалог чата (команда /cancel)
func (s *AgentService) ResetSession(chatID int64) {
	s.sessions.Reset(chatID)
}

// advance продвигает диалог через все поля, которые удаётся извлечь из
// текущего сообщения: намерение, дату, время, затем вопрос
// подтверждения. Останавливается только неудачное извлечение — тогда
// задаётся точечный уточняющий вопрос.
func (s *AgentService) advance(ctx context.Context, state *dialog.State, text, lower string) string {
	if state.Intent == nlu.IntentUnset {
		state.Intent = nlu.ParseIntent(lower)
		if state.Intent == nlu.IntentUnset {
			// Не календарное сообщение: отвечаем как на общий вопрос,
			// состояние диалога не трогаем
			return s.answerGeneral(ctx, text)
		}
	}

	if !state.DateResolved() {
		if date, ok := nlu.ParseDate(lower, s.now().In(s.location)); ok {
			state.Date = &date
		} else {
			state.Prompt = dialog.PromptDate
			return replyAskDate
		}
	}

	if !state.TimeResolved() {
		if hour, minute, ok := nlu.ParseTime(lower); ok {
			state.Hour = &hour
			state.Minute = &minute
		} else {
			state.Prompt = dialog.PromptTime
			return replyAskTime
		}
	}

	state.Prompt = dialog.PromptConfirm
	return fmt.Sprintf(
		"Just to confirm, you want to %s a slot on %s? (yes/no)",
		state.Intent,
		state.StartTime().Format(summaryTimeLayout),
	)
}

// handleConfirmation разбирает ответ на "yes/no". "yes"/"correct"
// подтверждает и запускает действие, "no" полностью сбрасывает диалог,
// всё остальное — повторный вопрос без изменения состояния.
func (s *AgentService) handleConfirmation(ctx context.Context, state *dialog.State, lower string) string {
	switch {
	case strings.Contains(lower, "yes") || strings.Contains(lower, "correct"):
		state.Confirmed = true
	case strings.Contains(lower, "no"):
		state.Reset()
		return replyRestart
	default:
		return replyAskYesNo
	}

	return s.dispatch(ctx, state)
}

// dispatch выполняет подтверждённое действие. Состояние сбрасывается на
// каждом терминальном пути, каким бы ни был исход обращения к календарю.
func (s *AgentService) dispatch(ctx context.Context, state *dialog.State) string {
	start := state.StartTime()
	end := start.Add(slotDuration)
	intent := state.Intent
	state.Reset()

	switch intent {
	case nlu.IntentCheck:
		if !s.slotFree(ctx, start, end) {
			return replySlotTaken
		}
		return fmt.Sprintf("Yes, the slot on %s is available.", start.Format(summaryTimeLayout))

	case nlu.IntentBook:
		if !s.slotFree(ctx, start, end) {
			return replySlotTaken
		}
		if _, err := s.calendar.CreateEvent(ctx, eventSummary, start, end, eventDescription); err != nil {
			s.logger.Error("Booking failed", zap.Time("start", start), zap.Error(err))
			return replyBookingFailed
		}
		s.logger.Info("Appointment booked", zap.Time("start", start))
		return fmt.Sprintf("Your appointment is booked for %s!", start.Format(summaryTimeLayout))

	default:
		return replyUnknownAction
	}
}

// slotFree спрашивает календарь; ошибка коллаборатора трактуется как
// занятый слот и пользователю отдельно не показывается
func (s *AgentService) slotFree(ctx context.Context, start, end time.Time) bool {
	free, err := s.calendar.IsSlotFree(ctx, start, end)
	if err != nil {
		s.logger.Error("Availability check failed", zap.Time("start", start), zap.Error(err))
		return false
	}
	return free
}

// answerGeneral отдаёт сообщение внешнему QA-коллаборатору
func (s *AgentService) answerGeneral(ctx context.Context, text string) string {
	answer, err := s.answerer.Answer(ctx, text)
	if err != nil {
		s.logger.Warn("General question answering failed", zap.Error(err))
		return replyAnswerFailed
	}
	return answer
}
