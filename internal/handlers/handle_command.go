package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/RonjuVai/Osint-Bot/internal/ledger"
	"github.com/RonjuVai/Osint-Bot/internal/messages"
	"github.com/RonjuVai/Osint-Bot/internal/pricing"
	"github.com/RonjuVai/Osint-Bot/types"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (bh *Handlers) HandleCommand(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) {
	command := strings.TrimSpace(update.Message.Text)
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	if strings.Contains(cmd, "@") {
		cmd = strings.SplitN(cmd, "@", 2)[0]
	}
	chatID := update.Message.Chat.ID

	switch cmd {
	case "/start":
		bh.handleStart(ctx, b, update, userID)
	case "/aadhaar":
		bh.runLookup(ctx, b, chatID, userID, types.LookupAadhaar, commandArg(command))
	case "/vehicle":
		bh.runLookup(ctx, b, chatID, userID, types.LookupVehicle, commandArg(command))
	case "/phone":
		bh.runLookup(ctx, b, chatID, userID, types.LookupPhone, commandArg(command))
	case "/premium_status":
		bh.handlePremiumStatus(ctx, b, chatID, userID)
	case "/referral":
		bh.handleReferral(ctx, b, chatID, userID)
	case "/help":
		bh.sendHTML(ctx, b, chatID, messages.Help())
	case "/premium", "/credits", "/broadcast", "/stats":
		bh.HandleAdminCommand(ctx, b, update, userID, cmd, fields[1:])
	default:
		bh.sendHTML(ctx, b, chatID, messages.ErrorUnknownCommand())
	}
}

// handleStart creates the account on first contact, granting the trial
// and paying the referral reward in the same breath. A repeat /start
// with a referral argument pays nothing.
func (bh *Handlers) handleStart(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) {
	chatID := update.Message.Chat.ID
	username, firstName := firstNameFromUpdate(update)

	var referrerID *int64
	if arg := commandArg(update.Message.Text); arg != "" {
		if id, ok := bh.referrals.Resolve(arg); ok && id != userID {
			referrerID = &id
		}
	}

	created, rewarded, err := bh.ledger.EnsureAccount(userID, username, firstName, referrerID)
	if err != nil {
		log.Printf("Error ensuring account for %d: %v", userID, err)
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return
	}

	if rewarded && referrerID != nil {
		bh.sendHTML(ctx, b, *referrerID, messages.ReferralRewardNotice(pricing.ReferralCredits()))
	}

	var welcome string
	if created {
		welcome = messages.Welcome(firstName)
	} else {
		welcome = messages.WelcomeBack(firstName)
	}

	snap, err := bh.ledger.Status(userID)
	if err == nil && snap.Verified {
		bh.sendHTML(ctx, b, chatID, welcome)
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        welcome + "\n\n" + messages.JoinPrompt(),
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: bh.buildJoinKeyboard(),
	})
	if err != nil {
		log.Printf("Failed to send join prompt to chat %d: %v", chatID, err)
	}
}

func (bh *Handlers) buildJoinKeyboard() *models.InlineKeyboardMarkup {
	channel := strings.TrimPrefix(bh.cfg.ForceJoinChannel, "@")
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "✅ Verify Join", CallbackData: "verify_join"}},
			{{Text: "🔗 Join Channel", URL: "https://t.me/" + channel}},
		},
	}
}

func (bh *Handlers) buildLookupKeyboard() *models.InlineKeyboardMarkup {
	pad := func(s string) string { return " " + s + " " }
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: pad("📄 Aadhaar"), CallbackData: "lookup_aadhaar"}},
			{{Text: pad("🚗 Vehicle"), CallbackData: "lookup_vehicle"}},
			{{Text: pad("📱 Phone"), CallbackData: "lookup_phone"}},
		},
	}
}

func (bh *Handlers) handlePremiumStatus(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	snap, err := bh.ledger.Status(userID)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			bh.sendHTML(ctx, b, chatID, messages.NotVerified())
			return
		}
		log.Printf("Error reading status for %d: %v", userID, err)
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return
	}
	if snap.Premium {
		bh.sendHTML(ctx, b, chatID, messages.PremiumStatusActive(*snap.PremiumUntil, snap.Remaining))
		return
	}
	bh.sendHTML(ctx, b, chatID, messages.PremiumStatusExpired(snap.Credits, bh.cfg.SupportHandle))
}

func (bh *Handlers) handleReferral(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	snap, err := bh.ledger.Status(userID)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			bh.sendHTML(ctx, b, chatID, messages.NotVerified())
			return
		}
		log.Printf("Error reading status for %d: %v", userID, err)
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return
	}
	bh.sendHTML(ctx, b, chatID, messages.ReferralInfo(bh.cfg.BotUsername, snap.ReferralCode, pricing.ReferralCredits()))
}
