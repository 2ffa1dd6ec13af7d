package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает любой свободный текст: каждое
// сообщение — один ход slot-filling диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		// Команды обрабатываются своими хендлерами
		return
	}

	chatID := update.Message.Chat.ID

	h.logger.Debug("Processing dialog turn",
		zap.Int64("chat_id", chatID),
		zap.Int("text_length", len(text)))

	reply := h.agentService.HandleMessage(ctx, chatID, text)
	h.sendMessage(ctx, b, chatID, reply)
}
