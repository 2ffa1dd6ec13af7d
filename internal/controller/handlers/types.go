package handlers

import (
	"time"

	"go.uber.org/zap"

	"github.com/siddugarlapati/Tailor-talk/internal/service"
)

// Handlers содержит все зависимости для обработки команд и сообщений
type Handlers struct {
	agentService    *service.AgentService
	calendarService *service.CalendarService
	location        *time.Location
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик
func NewHandlers(
	agentService *service.AgentService,
	calendarService *service.CalendarService,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		agentService:    agentService,
		calendarService: calendarService,
		location:        location,
		logger:          logger,
	}
}
