package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/RonjuVai/Osint-Bot/internal/messages"
	"github.com/RonjuVai/Osint-Bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleText treats a plain message as the pending lookup argument when
// an awaiting mode is armed; otherwise it shows help.
func (bh *Handlers) HandleText(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) {
	if update == nil || update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	state, err := bh.sessions.GetAwaitState(userID)
	if err != nil {
		log.Printf("Error reading await state for %d: %v", userID, err)
		state = types.AwaitIdle
	}

	if state == types.AwaitIdle {
		bh.sendHTML(ctx, b, chatID, messages.Help())
		return
	}

	if err := bh.sessions.ClearAwaitState(userID); err != nil {
		log.Printf("Error clearing await state for %d: %v", userID, err)
	}

	switch state {
	case types.AwaitAadhaar:
		bh.runLookup(ctx, b, chatID, userID, types.LookupAadhaar, text)
	case types.AwaitVehicle:
		bh.runLookup(ctx, b, chatID, userID, types.LookupVehicle, text)
	case types.AwaitPhone:
		bh.runLookup(ctx, b, chatID, userID, types.LookupPhone, text)
	default:
		bh.sendHTML(ctx, b, chatID, messages.Help())
	}
}
