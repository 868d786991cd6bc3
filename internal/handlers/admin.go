package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/RonjuVai/Osint-Bot/internal/ledger"
	"github.com/RonjuVai/Osint-Bot/internal/messages"
	"github.com/RonjuVai/Osint-Bot/internal/pricing"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// defaultGrantDays is the /premium grant length when no day count is
// given.
var defaultGrantDays = int(pricing.AdminGrantDefault / (24 * time.Hour))

// requireOperator gates the admin surface on the single configured
// operator id. An unset id disables the surface entirely.
func (bh *Handlers) requireOperator(userID int64) error {
	if bh.cfg.AdminUserID == 0 || userID != bh.cfg.AdminUserID {
		return ledger.ErrUnauthorized
	}
	return nil
}

// HandleAdminCommand serves the operator-only surface. Non-operators
// get the same unknown-command reply for every admin command, so the
// response shape leaks nothing about which commands exist.
func (bh *Handlers) HandleAdminCommand(ctx context.Context, b *bot.Bot, update *models.Update, userID int64, cmd string, args []string) {
	chatID := update.Message.Chat.ID

	if err := bh.requireOperator(userID); err != nil {
		bh.sendHTML(ctx, b, chatID, messages.ErrorUnknownCommand())
		return
	}

	switch cmd {
	case "/premium":
		bh.adminGrantPremium(ctx, b, chatID, args)
	case "/credits":
		bh.adminAdjustCredits(ctx, b, chatID, args)
	case "/broadcast":
		bh.adminBroadcast(ctx, b, chatID, args)
	case "/stats":
		bh.adminStats(ctx, b, chatID)
	}
}

func (bh *Handlers) adminGrantPremium(ctx context.Context, b *bot.Bot, chatID int64, args []string) {
	if len(args) < 1 {
		bh.sendHTML(ctx, b, chatID, messages.AdminUsagePremium())
		return
	}
	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		bh.sendHTML(ctx, b, chatID, messages.AdminUsagePremium())
		return
	}
	days := defaultGrantDays
	if len(args) >= 2 {
		d, err := strconv.Atoi(args[1])
		if err != nil || d <= 0 || d > 3650 {
			bh.sendHTML(ctx, b, chatID, messages.AdminUsagePremium())
			return
		}
		days = d
	}

	_, err = bh.ledger.GrantPremium(targetID, time.Duration(days)*24*time.Hour)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			bh.sendHTML(ctx, b, chatID, messages.AdminUserNotFound())
			return
		}
		log.Printf("Admin: premium grant for %d failed: %v", targetID, err)
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return
	}

	bh.sendHTML(ctx, b, chatID, messages.AdminPremiumGranted(targetID, days))
	// Best effort: the grant stands whether or not the user hears about it.
	bh.sendHTML(ctx, b, targetID, messages.AdminPremiumNotice(days))
}

func (bh *Handlers) adminAdjustCredits(ctx context.Context, b *bot.Bot, chatID int64, args []string) {
	if len(args) < 2 {
		bh.sendHTML(ctx, b, chatID, messages.AdminUsageCredits())
		return
	}
	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		bh.sendHTML(ctx, b, chatID, messages.AdminUsageCredits())
		return
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		bh.sendHTML(ctx, b, chatID, messages.AdminUsageCredits())
		return
	}

	if err := bh.ledger.AdjustCredits(targetID, delta); err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			bh.sendHTML(ctx, b, chatID, messages.AdminUserNotFound())
			return
		}
		log.Printf("Admin: credit adjustment for %d failed: %v", targetID, err)
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return
	}

	bh.sendHTML(ctx, b, chatID, messages.AdminCreditsAdjusted(targetID, delta))
}

func (bh *Handlers) adminBroadcast(ctx context.Context, b *bot.Bot, chatID int64, args []string) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		bh.sendHTML(ctx, b, chatID, messages.AdminUsageBroadcast())
		return
	}

	if err := bh.accounts.SaveBroadcast(text); err != nil {
		log.Printf("Admin: failed to save broadcast text: %v", err)
	}

	ids, err := bh.accounts.AllUserIDs()
	if err != nil {
		log.Printf("Admin: failed to list users for broadcast: %v", err)
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return
	}

	bh.sendHTML(ctx, b, chatID, messages.BroadcastStarted(len(ids)))

	body := messages.BroadcastBody(text)
	ok, failed := BroadcastAll(ctx, ids, broadcastPause, func(ctx context.Context, userID int64) error {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    userID,
			Text:      body,
			ParseMode: messages.ParseModeHTML,
		})
		return err
	})

	bh.sendHTML(ctx, b, chatID, messages.BroadcastReport(ok, failed))
}

// broadcastPause spaces consecutive sends under Telegram's per-bot
// message rate limit.
const broadcastPause = 100 * time.Millisecond

// BroadcastAll delivers to each recipient in isolation: one failure is
// counted, logged and skipped, never propagated. Sends are paced by
// pause; cancelling ctx stops the run early.
func BroadcastAll(ctx context.Context, ids []int64, pause time.Duration, send func(context.Context, int64) error) (ok, failed int) {
	for i, id := range ids {
		if i > 0 && pause > 0 {
			select {
			case <-ctx.Done():
				return ok, failed
			case <-time.After(pause):
			}
		}
		if err := send(ctx, id); err != nil {
			log.Printf("Broadcast: delivery to %d failed: %v", id, err)
			failed++
			continue
		}
		ok++
	}
	return ok, failed
}

func (bh *Handlers) adminStats(ctx context.Context, b *bot.Bot, chatID int64) {
	stats, err := bh.accounts.Stats()
	if err != nil {
		log.Printf("Admin: stats query failed: %v", err)
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return
	}
	bh.sendHTML(ctx, b, chatID, messages.StatsReport(
		stats.TotalAccounts,
		stats.PremiumAccounts,
		stats.VerifiedAccounts,
		stats.ReferralEvents,
		bh.cfg.ForceJoinChannel,
	))
}
