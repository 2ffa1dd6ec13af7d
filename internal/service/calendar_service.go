package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/siddugarlapati/Tailor-talk/internal/model"
	"github.com/siddugarlapati/Tailor-talk/internal/repository"
)

// CalendarService — календарь поверх таблицы events в Postgres.
// Между IsSlotFree и CreateEvent нет транзакции: слот может быть занят
// другим чатом между проверкой и созданием. Известное ограничение,
// здесь не закрывается.
type CalendarService struct {
	eventRepo *repository.EventRepository
	logger    *zap.Logger
}

func NewCalendarService(eventRepo *repository.EventRepository, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// IsSlotFree сообщает, свободен ли полуоткрытый интервал [start, end)
func (s *CalendarService) IsSlotFree(ctx context.Context, start, end time.Time) (bool, error) {
	count, err := s.eventRepo.CountOverlapping(ctx, start, end)
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return count == 0, nil
}

// CreateEvent создаёт одно неповторяющееся событие
func (s *CalendarService) CreateEvent(ctx context.Context, summary string, start, end time.Time, description string) (*model.CalendarEvent, error) {
	event := &model.CalendarEvent{
		ID:          uuid.NewString(),
		Summary:     summary,
		Description: description,
		StartTime:   start,
		EndTime:     end,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("Event created",
		zap.String("event_id", event.ID),
		zap.Time("start", start),
		zap.Time("end", end))

	return event, nil
}

// EventsBetween возвращает события интервала для отображения расписания
func (s *CalendarService) EventsBetween(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error) {
	events, err := s.eventRepo.GetBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("events between: %w", err)
	}
	return events, nil
}
