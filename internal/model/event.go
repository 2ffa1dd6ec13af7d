package model

import "time"

// CalendarEvent — забронированное событие в календаре.
// Интервал [StartTime, EndTime) полуоткрытый: событие, заканчивающееся
// ровно в начале другого, пересечением не считается.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}
