package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/RonjuVai/Osint-Bot/internal/config"
	"github.com/RonjuVai/Osint-Bot/internal/contextkeys"
	"github.com/RonjuVai/Osint-Bot/internal/ledger"
	"github.com/RonjuVai/Osint-Bot/internal/lookup"
	"github.com/RonjuVai/Osint-Bot/internal/messages"
	"github.com/RonjuVai/Osint-Bot/internal/referral"
	"github.com/RonjuVai/Osint-Bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type Handlers struct {
	ledger    *ledger.Service
	referrals *referral.Engine
	accounts  types.AccountStore
	sessions  types.SessionStore
	lookups   *lookup.Client
	cfg       *config.Config
}

func NewHandlers(ledgerSvc *ledger.Service, referrals *referral.Engine, accounts types.AccountStore, sessions types.SessionStore, lookups *lookup.Client, cfg *config.Config) *Handlers {
	return &Handlers{
		ledger:    ledgerSvc,
		referrals: referrals,
		accounts:  accounts,
		sessions:  sessions,
		lookups:   lookups,
		cfg:       cfg,
	}
}

func (bh *Handlers) MainHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := bh.getChatIDFromUpdate(update)
	messageType, _ := contextkeys.GetMessageType(ctx)
	userID, ok := contextkeys.GetUserID(ctx)
	if !ok || userID == 0 {
		return
	}

	switch messageType {
	case contextkeys.MessageTypeCommand:
		bh.HandleCommand(ctx, b, update, userID)
	case contextkeys.MessageTypeText:
		bh.HandleText(ctx, b, update, userID)
	case contextkeys.MessageTypeClickButton:
		bh.HandleClickButton(ctx, b, update, userID)
	default:
		if chatID != 0 {
			bh.sendHTML(ctx, b, chatID, messages.Help())
		}
	}
}

func (bh *Handlers) getChatIDFromUpdate(update *models.Update) int64 {
	if update == nil {
		return 0
	}
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil {
		if update.CallbackQuery.Message.Message != nil {
			return update.CallbackQuery.Message.Message.Chat.ID
		}
		if update.CallbackQuery.Message.InaccessibleMessage != nil {
			return update.CallbackQuery.Message.InaccessibleMessage.Chat.ID
		}
	}
	return 0
}

func (bh *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: messages.ParseModeHTML,
	})
	if err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

// sendSplit delivers long lookup results in Telegram-sized chunks.
func (bh *Handlers) sendSplit(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	for _, part := range messages.Split(text) {
		bh.sendHTML(ctx, b, chatID, part)
	}
}

func (bh *Handlers) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) error {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	return err
}

func firstNameFromUpdate(update *models.Update) (username, firstName string) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return "", ""
	}
	return update.Message.From.Username, update.Message.From.FirstName
}

func commandArg(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
