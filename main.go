package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/RonjuVai/Osint-Bot/internal/config"
	"github.com/RonjuVai/Osint-Bot/internal/handlers"
	"github.com/RonjuVai/Osint-Bot/internal/ledger"
	"github.com/RonjuVai/Osint-Bot/internal/lookup"
	"github.com/RonjuVai/Osint-Bot/internal/messages"
	"github.com/RonjuVai/Osint-Bot/internal/middleware"
	"github.com/RonjuVai/Osint-Bot/internal/pricing"
	"github.com/RonjuVai/Osint-Bot/internal/referral"
	"github.com/RonjuVai/Osint-Bot/internal/sweeper"
	"github.com/RonjuVai/Osint-Bot/store"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func main() {
	cfg := config.LoadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	redisAddr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
	rdb, err := store.NewRedisClient(redisAddr, cfg.RedisPassword, cfg.RedisDB, "osint_bot")
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	sessionStore := store.NewRedisSessionStore(rdb, cfg.AwaitTTL)

	pgStore, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pgStore.Close()

	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}
	if cfg.AdminUserID == 0 {
		log.Println("Warning: ADMIN_USER_ID is not set, admin commands are disabled")
	}

	b, err := bot.New(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ledgerSvc := ledger.NewService(pgStore, pricing.InitialCredits(), pricing.ReferralCredits(), pricing.TrialDuration)
	referrals := referral.NewEngine(pgStore)
	lookups := lookup.NewClient(cfg.AadhaarAPIBaseURL, cfg.VehicleAPIBaseURL, cfg.PhoneAPIBaseURL)

	expirySweeper := sweeper.New(pgStore, func(ctx context.Context, userID int64) error {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: userID,
			Text:   messages.PremiumExpiredNotice(cfg.SupportHandle),
		})
		return err
	}, cfg.SweepInterval)

	h := handlers.NewHandlers(ledgerSvc, referrals, pgStore, sessionStore, lookups, cfg)

	expirySweeper.Start()
	defer expirySweeper.Stop()

	middlewares := middleware.NewMessageAnalyzer()
	handlerChain := middlewares.ResolveUserMiddleware(
		middlewares.AnalyzeMessageMiddleware(
			h.MainHandler,
		),
	)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, handlerChain)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, handlerChain)

	log.Println("Bot started. Press Ctrl+C to stop.")
	b.Start(ctx)
}
