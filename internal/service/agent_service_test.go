package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siddugarlapati/Tailor-talk/internal/dialog"
	"github.com/siddugarlapati/Tailor-talk/internal/model"
	"github.com/siddugarlapati/Tailor-talk/internal/nlu"
)

// Среда, 9 июля 2025
var testNow = time.Date(2025, time.July, 9, 10, 0, 0, 0, time.UTC)

type fakeCalendar struct {
	free      bool
	freeErr   error
	createErr error

	created []*model.CalendarEvent
}

func (f *fakeCalendar) IsSlotFree(_ context.Context, start, end time.Time) (bool, error) {
	if f.freeErr != nil {
		return false, f.freeErr
	}
	return f.free, nil
}

func (f *fakeCalendar) CreateEvent(_ context.Context, summary string, start, end time.Time, description string) (*model.CalendarEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	event := &model.CalendarEvent{
		ID:          "test-event",
		Summary:     summary,
		Description: description,
		StartTime:   start,
		EndTime:     end,
	}
	f.created = append(f.created, event)
	return event, nil
}

type fakeAnswerer struct {
	reply string
	err   error
	asked []string
}

func (f *fakeAnswerer) Answer(_ context.Context, question string) (string, error) {
	f.asked = append(f.asked, question)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestAgent(calendar Calendar, answerer QuestionAnswerer) *AgentService {
	agent := NewAgentService(calendar, answerer, time.UTC, zap.NewNop())
	agent.now = func() time.Time { return testNow }
	return agent
}

func (s *AgentService) stateOf(chatID int64) *dialog.State {
	return s.sessions.Session(chatID).State
}

func assertFresh(t *testing.T, state *dialog.State) {
	t.Helper()
	assert.Equal(t, nlu.IntentUnset, state.Intent)
	assert.Nil(t, state.Date)
	assert.False(t, state.TimeResolved())
	assert.False(t, state.Confirmed)
	assert.Equal(t, dialog.PromptNone, state.Prompt)
}

func TestBookingFlowEndsInBookedSlot(t *testing.T) {
	ctx := context.Background()
	calendar := &fakeCalendar{free: true}
	agent := newTestAgent(calendar, &fakeAnswerer{})

	assert.Equal(t, "For which date would you like to book or check availability?",
		agent.HandleMessage(ctx, 1, "book a slot"))
	assert.Equal(t, "What time are you interested in? (e.g., 3pm, 14:00, afternoon)",
		agent.HandleMessage(ctx, 1, "tomorrow"))

	confirm := agent.HandleMessage(ctx, 1, "3pm")
	assert.Equal(t, "Just to confirm, you want to book a slot on Thursday, July 10 at 03:00 PM? (yes/no)", confirm)

	reply := agent.HandleMessage(ctx, 1, "yes")
	assert.Equal(t, "Your appointment is booked for Thursday, July 10 at 03:00 PM!", reply)

	require.Len(t, calendar.created, 1)
	event := calendar.created[0]
	assert.Equal(t, "Appointment via Tailor Talk", event.Summary)
	assert.Equal(t, "Booked through conversational agent.", event.Description)
	assert.Equal(t, time.Date(2025, time.July, 10, 15, 0, 0, 0, time.UTC), event.StartTime)
	assert.Equal(t, time.Date(2025, time.July, 10, 16, 0, 0, 0, time.UTC), event.EndTime)

	// Терминальное действие полностью сбрасывает диалог
	assertFresh(t, agent.stateOf(1))
}

func TestBookingFlowSlotTakenResetsState(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{free: false}, &fakeAnswerer{})

	agent.HandleMessage(ctx, 1, "book a slot")
	agent.HandleMessage(ctx, 1, "tomorrow")
	agent.HandleMessage(ctx, 1, "3pm")

	reply := agent.HandleMessage(ctx, 1, "yes")
	assert.Equal(t, "Sorry, that slot is already booked. Would you like to try another time?", reply)
	assertFresh(t, agent.stateOf(1))

	// Новый заход начинается с чистого листа: снова спросят дату
	assert.Equal(t, "For which date would you like to book or check availability?",
		agent.HandleMessage(ctx, 1, "book a slot"))
}

func TestSingleMessageSuppliesEverything(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{free: true}, &fakeAnswerer{})

	reply := agent.HandleMessage(ctx, 1, "book a slot tomorrow at 3pm")
	assert.Equal(t, "Just to confirm, you want to book a slot on Thursday, July 10 at 03:00 PM? (yes/no)", reply)
	assert.Equal(t, dialog.PromptConfirm, agent.stateOf(1).Prompt)
}

func TestCheckAvailabilityFlow(t *testing.T) {
	ctx := context.Background()
	calendar := &fakeCalendar{free: true}
	agent := newTestAgent(calendar, &fakeAnswerer{})

	agent.HandleMessage(ctx, 1, "do you have free slots this friday at noon?")
	reply := agent.HandleMessage(ctx, 1, "yes")

	assert.Equal(t, "Yes, the slot on Friday, July 11 at 12:00 PM is available.", reply)
	assert.Empty(t, calendar.created)
	assertFresh(t, agent.stateOf(1))
}

func TestNoAtConfirmationRestarts(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{free: true}, &fakeAnswerer{})

	agent.HandleMessage(ctx, 1, "book a slot tomorrow at 3pm")
	reply := agent.HandleMessage(ctx, 1, "no")

	assert.Equal(t, "Okay, let's start over. What would you like to do?", reply)
	assertFresh(t, agent.stateOf(1))
}

func TestUnclearConfirmationReasksWithoutTouchingState(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{free: true}, &fakeAnswerer{})

	agent.HandleMessage(ctx, 1, "book a slot tomorrow at 3pm")
	reply := agent.HandleMessage(ctx, 1, "maybe")

	assert.Equal(t, "Please reply 'yes' to confirm or 'no' to start over.", reply)

	state := agent.stateOf(1)
	assert.Equal(t, dialog.PromptConfirm, state.Prompt)
	assert.True(t, state.AllResolved())
	assert.False(t, state.Confirmed)
}

func TestUnknownIntentGoesToQuestionAnswerer(t *testing.T) {
	ctx := context.Background()
	answerer := &fakeAnswerer{reply: "The capital of France is Paris."}
	agent := newTestAgent(&fakeCalendar{free: true}, answerer)

	reply := agent.HandleMessage(ctx, 1, "what is the capital of France?")

	assert.Equal(t, "The capital of France is Paris.", reply)
	assert.Equal(t, []string{"what is the capital of France?"}, answerer.asked)
	// Вопрос не меняет состояние диалога
	assertFresh(t, agent.stateOf(1))
}

func TestQuestionAnswererFailureReturnsApology(t *testing.T) {
	ctx := context.Background()
	answerer := &fakeAnswerer{err: errors.New("quota exceeded")}
	agent := newTestAgent(&fakeCalendar{free: true}, answerer)

	reply := agent.HandleMessage(ctx, 1, "tell me a joke")
	assert.Equal(t, "Sorry, I couldn't answer that right now.", reply)
	assertFresh(t, agent.stateOf(1))
}

func TestUnresolvableDateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{free: true}, &fakeAnswerer{})

	agent.HandleMessage(ctx, 1, "book a slot")
	first := agent.HandleMessage(ctx, 1, "hmm")
	second := agent.HandleMessage(ctx, 1, "hmm")

	assert.Equal(t, first, second)

	state := agent.stateOf(1)
	assert.Equal(t, dialog.PromptDate, state.Prompt)
	assert.Equal(t, nlu.IntentBook, state.Intent)
	assert.Nil(t, state.Date)
	assert.False(t, state.TimeResolved())
}

func TestCalendarErrorTreatedAsTakenSlot(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{freeErr: errors.New("calendar down")}, &fakeAnswerer{})

	agent.HandleMessage(ctx, 1, "book a slot tomorrow at 3pm")
	reply := agent.HandleMessage(ctx, 1, "yes")

	assert.Equal(t, "Sorry, that slot is already booked. Would you like to try another time?", reply)
	assertFresh(t, agent.stateOf(1))
}

func TestCreateEventErrorReturnsBookingFailure(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{free: true, createErr: errors.New("insert failed")}, &fakeAnswerer{})

	agent.HandleMessage(ctx, 1, "book a slot tomorrow at 3pm")
	reply := agent.HandleMessage(ctx, 1, "yes")

	assert.Equal(t, "There was an error booking your appointment. Please try again.", reply)
	assertFresh(t, agent.stateOf(1))
}

func TestChatsDoNotShareState(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{free: true}, &fakeAnswerer{reply: "hi"})

	agent.HandleMessage(ctx, 1, "book a slot")
	reply := agent.HandleMessage(ctx, 2, "hello there")

	assert.Equal(t, "hi", reply)
	assert.Equal(t, nlu.IntentBook, agent.stateOf(1).Intent)
	assertFresh(t, agent.stateOf(2))
}

func TestResetSession(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(&fakeCalendar{free: true}, &fakeAnswerer{})

	agent.HandleMessage(ctx, 1, "book a slot tomorrow at 3pm")
	agent.ResetSession(1)
	assertFresh(t, agent.stateOf(1))
}
