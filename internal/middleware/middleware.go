package middleware

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/RonjuVai/Osint-Bot/internal/contextkeys"
)

type Middlewares struct{}

func NewMessageAnalyzer() *Middlewares {
	return &Middlewares{}
}

// ResolveUserMiddleware extracts the acting user and drops updates that
// carry none.
func (m *Middlewares) ResolveUserMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		var userID int64

		switch {
		case update.Message != nil && update.Message.From != nil:
			userID = update.Message.From.ID
		case update.CallbackQuery != nil:
			userID = update.CallbackQuery.From.ID
		default:
			return
		}

		if userID == 0 {
			return
		}

		next(contextkeys.WithUserID(ctx, userID), b, update)
	}
}

// AnalyzeMessageMiddleware classifies the update as a command, a button
// press or free text.
func (m *Middlewares) AnalyzeMessageMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.CallbackQuery != nil && update.CallbackQuery.Data != "" {
			newCtx := contextkeys.WithMessageType(ctx, contextkeys.MessageTypeClickButton)
			newCtx = contextkeys.WithCallbackData(newCtx, update.CallbackQuery.Data)
			next(newCtx, b, update)
			return
		}

		if update.Message != nil && update.Message.Text != "" {
			if strings.HasPrefix(update.Message.Text, "/") {
				next(contextkeys.WithMessageType(ctx, contextkeys.MessageTypeCommand), b, update)
			} else {
				next(contextkeys.WithMessageType(ctx, contextkeys.MessageTypeText), b, update)
			}
			return
		}

		next(contextkeys.WithMessageType(ctx, contextkeys.MessageTypeUnknown), b, update)
	}
}
