package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siddugarlapati/Tailor-talk/internal/model"
	"github.com/siddugarlapati/Tailor-talk/internal/repository/base"
)

type EventRepository struct {
	*base.Repository
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет новое событие
func (r *EventRepository) Create(ctx context.Context, event *model.CalendarEvent) error {
	query := `
		INSERT INTO events (id, summary, description, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		event.ID,
		event.Summary,
		event.Description,
		event.StartTime,
		event.EndTime,
	).Scan(&event.CreatedAt)

	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

// CountOverlapping считает события, пересекающие полуоткрытый
// интервал [start, end)
func (r *EventRepository) CountOverlapping(ctx context.Context, start, end time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM events
		WHERE start_time < $2 AND end_time > $1
	`

	var count int64
	if err := r.QueryRow(ctx, query, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overlapping events: %w", err)
	}

	return count, nil
}

// GetBetween возвращает события интервала, отсортированные по началу
func (r *EventRepository) GetBetween(ctx context.Context, from, to time.Time) ([]*model.CalendarEvent, error) {
	query := `
		SELECT id, summary, description, start_time, end_time, created_at
		FROM events
		WHERE start_time < $2 AND end_time > $1
		ORDER BY start_time ASC
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get events between: %w", err)
	}
	defer rows.Close()

	var events []*model.CalendarEvent
	for rows.Next() {
		var event model.CalendarEvent
		err := rows.Scan(
			&event.ID,
			&event.Summary,
			&event.Description,
			&event.StartTime,
			&event.EndTime,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}
