package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/RonjuVai/Osint-Bot/internal/contextkeys"
	"github.com/RonjuVai/Osint-Bot/internal/messages"
	"github.com/RonjuVai/Osint-Bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (bh *Handlers) HandleClickButton(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) {
	if update.CallbackQuery == nil {
		return
	}

	data, _ := contextkeys.GetCallbackData(ctx)
	if data == "" {
		data = update.CallbackQuery.Data
	}
	data = strings.TrimSpace(data)

	switch data {
	case "verify_join":
		bh.handleVerifyJoin(ctx, b, update, userID)
	case "lookup_aadhaar":
		bh.armAwaitState(ctx, b, update, userID, types.AwaitAadhaar, "📄 Send the Aadhaar number to look up:")
	case "lookup_vehicle":
		bh.armAwaitState(ctx, b, update, userID, types.AwaitVehicle, "🚗 Send the vehicle number to look up:")
	case "lookup_phone":
		bh.armAwaitState(ctx, b, update, userID, types.AwaitPhone, "📱 Send the phone number to look up:")
	default:
		_ = bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)
	}
}

// handleVerifyJoin checks channel membership and flips the verified
// flag. The flag never auto-reverts afterwards.
func (bh *Handlers) handleVerifyJoin(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) {
	member, err := b.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: bh.cfg.ForceJoinChannel,
		UserID: userID,
	})
	if err != nil {
		log.Printf("Error checking membership for %d: %v", userID, err)
		_ = bh.answerCallback(ctx, b, update.CallbackQuery.ID, messages.VerifyError(), true)
		return
	}

	if !isChannelMember(member) {
		_ = bh.answerCallback(ctx, b, update.CallbackQuery.ID, messages.VerifyFailed(), true)
		return
	}

	if err := bh.ledger.Verify(userID); err != nil {
		log.Printf("Error verifying user %d: %v", userID, err)
		_ = bh.answerCallback(ctx, b, update.CallbackQuery.ID, messages.VerifyError(), true)
		return
	}

	_ = bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)

	if update.CallbackQuery.Message.Message != nil {
		msg := update.CallbackQuery.Message.Message
		_, _ = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      messages.VerifySucceeded(),
			ParseMode: messages.ParseModeHTML,
			ReplyMarkup: &models.InlineKeyboardMarkup{
				InlineKeyboard: bh.buildLookupKeyboard().InlineKeyboard,
			},
		})
	}
}

func isChannelMember(member *models.ChatMember) bool {
	if member == nil {
		return false
	}
	switch member.Type {
	case models.ChatMemberTypeMember, models.ChatMemberTypeAdministrator, models.ChatMemberTypeOwner:
		return true
	default:
		return false
	}
}

// armAwaitState marks the next plain message as the pending lookup
// argument. The session entry carries a TTL, so an unanswered prompt
// resets on its own.
func (bh *Handlers) armAwaitState(ctx context.Context, b *bot.Bot, update *models.Update, userID int64, state types.AwaitState, prompt string) {
	if err := bh.sessions.SetAwaitState(userID, state); err != nil {
		log.Printf("Error arming await state for %d: %v", userID, err)
		_ = bh.answerCallback(ctx, b, update.CallbackQuery.ID, messages.ErrorDefault(), true)
		return
	}
	_ = bh.answerCallback(ctx, b, update.CallbackQuery.ID, "", false)

	chatID := bh.getChatIDFromUpdate(update)
	if chatID != 0 {
		bh.sendHTML(ctx, b, chatID, prompt)
	}
}
