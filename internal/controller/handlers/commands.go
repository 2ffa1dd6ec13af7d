package handlers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/siddugarlapati/Tailor-talk/internal/render"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"I'm Tailor Talk — an assistant for booking appointments.\n\n"+
			"Just write what you need, for example:\n"+
			"• book a slot tomorrow at 3pm\n"+
			"• do you have free slots this friday?\n\n"+
			"Commands:\n"+
			"/week - This week's bookings\n"+
			"/cancel - Start the conversation over\n"+
			"/help - More examples",
		update.Message.From.FirstName,
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 What I understand:\n\n" +
		"Booking: \"book\", \"schedule\", \"set up\", \"make an appointment\"\n" +
		"Availability: \"free\", \"available\", \"availability\", \"slots\"\n\n" +
		"Dates: today, tomorrow, this friday, next monday, 2025-12-01\n" +
		"Times: 3pm, 14:00, 7:30am, morning, noon, afternoon, evening\n\n" +
		"Every slot is one hour. I always ask you to confirm before\n" +
		"touching the calendar.\n\n" +
		"Anything else you write I'll try to answer as a general question.\n\n" +
		"/week - This week's bookings\n" +
		"/cancel - Start the conversation over"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel — явная отмена диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	h.agentService.ResetSession(chatID)

	h.logger.Info("Dialog canceled", zap.Int64("chat_id", chatID))
	h.sendMessage(ctx, b, chatID, "🔄 Okay, I've cleared our conversation. What would you like to do?")
}

// HandleWeek обрабатывает команду /week — картинка занятости текущей недели
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	now := time.Now().In(h.location)
	weekStart, weekEnd := render.WeekBounds(now)

	events, err := h.calendarService.EventsBetween(ctx, weekStart, weekEnd)
	if err != nil {
		h.logger.Error("Failed to load week events", zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Couldn't load this week's schedule. Please try again later.")
		return
	}

	imageData, err := render.WeekImage(weekStart, events, now)
	if err != nil {
		h.logger.Error("Failed to render week image", zap.Error(err))
		h.sendMessage(ctx, b, chatID, "❌ Couldn't draw the schedule. Please try again later.")
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
		Caption: fmt.Sprintf("🗓 Bookings for the week of %s", weekStart.Format("January 02")),
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
