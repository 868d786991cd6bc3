package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/RonjuVai/Osint-Bot/internal/ledger"
	"github.com/RonjuVai/Osint-Bot/internal/lookup"
	"github.com/RonjuVai/Osint-Bot/internal/messages"
	"github.com/RonjuVai/Osint-Bot/internal/pricing"
	"github.com/RonjuVai/Osint-Bot/types"
	"github.com/go-telegram/bot"
)

// runLookup is the metered-lookup path: validate, authorize, charge,
// call the provider, refund on any outcome other than a well-formed
// success. The denial paths never reach the external call, and the
// charge commits before the call starts.
func (bh *Handlers) runLookup(ctx context.Context, b *bot.Bot, chatID, userID int64, kind types.LookupKind, arg string) {
	arg, fetchLabel, ok := bh.validateArg(ctx, b, chatID, kind, arg)
	if !ok {
		return
	}

	decision, err := bh.ledger.Authorize(userID, ledger.ActionMetered, pricing.Cost(kind))
	if err != nil {
		bh.reportDenial(ctx, b, chatID, err)
		return
	}
	if !decision.Allowed {
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return
	}

	processing, perr := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   messages.Fetching(fetchLabel),
	})
	if perr != nil {
		log.Printf("Failed to send processing message to chat %d: %v", chatID, perr)
	}

	var resultText string
	refunded, err := bh.ledger.Charged(userID, decision.Charge, func() error {
		var ferr error
		resultText, ferr = bh.fetchAndFormat(ctx, kind, arg)
		return ferr
	})

	if processing != nil {
		_, _ = b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: processing.ID,
		})
	}

	if err != nil {
		bh.reportLookupFailure(ctx, b, chatID, err, refunded)
		return
	}

	bh.sendSplit(ctx, b, chatID, resultText)
}

func (bh *Handlers) validateArg(ctx context.Context, b *bot.Bot, chatID int64, kind types.LookupKind, arg string) (string, string, bool) {
	switch kind {
	case types.LookupAadhaar:
		if arg == "" {
			bh.sendHTML(ctx, b, chatID, messages.UsageAadhaar())
			return "", "", false
		}
		if !lookup.ValidAadhaar(arg) {
			bh.sendHTML(ctx, b, chatID, messages.InvalidAadhaar())
			return "", "", false
		}
		return arg, "Aadhaar", true
	case types.LookupVehicle:
		if arg == "" {
			bh.sendHTML(ctx, b, chatID, messages.UsageVehicle())
			return "", "", false
		}
		normalized, ok := lookup.NormalizeVehicleNo(arg)
		if !ok {
			bh.sendHTML(ctx, b, chatID, messages.InvalidVehicle())
			return "", "", false
		}
		return normalized, "Vehicle", true
	case types.LookupPhone:
		if arg == "" {
			bh.sendHTML(ctx, b, chatID, messages.UsagePhone())
			return "", "", false
		}
		normalized, ok := lookup.NormalizePhone(arg)
		if !ok {
			bh.sendHTML(ctx, b, chatID, messages.InvalidPhone())
			return "", "", false
		}
		return normalized, "Phone", true
	default:
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
		return "", "", false
	}
}

func (bh *Handlers) fetchAndFormat(ctx context.Context, kind types.LookupKind, arg string) (string, error) {
	switch kind {
	case types.LookupAadhaar:
		result, err := bh.lookups.FetchAadhaar(ctx, arg)
		if err != nil {
			return "", err
		}
		return messages.FormatAadhaar(result), nil
	case types.LookupVehicle:
		record, err := bh.lookups.FetchVehicle(ctx, arg)
		if err != nil {
			return "", err
		}
		return messages.FormatVehicle(record), nil
	case types.LookupPhone:
		result, err := bh.lookups.FetchPhone(ctx, arg)
		if err != nil {
			return "", err
		}
		return messages.FormatPhone(result), nil
	default:
		return "", ledger.ErrInvalidInput
	}
}

func (bh *Handlers) reportDenial(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	var short *ledger.InsufficientCreditsError
	switch {
	case errors.Is(err, ledger.ErrNotVerified):
		bh.sendHTML(ctx, b, chatID, messages.NotVerified())
	case errors.Is(err, ledger.ErrAccessExpired):
		bh.sendHTML(ctx, b, chatID, messages.AccessExpired(bh.cfg.SupportHandle))
	case errors.As(err, &short):
		bh.sendHTML(ctx, b, chatID, messages.InsufficientCredits(short.Shortfall()))
	default:
		log.Printf("Authorization failed: %v", err)
		bh.sendHTML(ctx, b, chatID, messages.ErrorDefault())
	}
}

// reportLookupFailure runs only after the refund already committed (or
// was not owed), so the refund line never lies.
func (bh *Handlers) reportLookupFailure(ctx context.Context, b *bot.Bot, chatID int64, err error, refunded bool) {
	var text string
	switch {
	case errors.Is(err, lookup.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		text = messages.LookupTimeout()
	case errors.Is(err, lookup.ErrNoRecord):
		text = messages.NoRecordFound()
	case errors.Is(err, lookup.ErrMalformed):
		text = messages.MalformedResponse()
	case errors.Is(err, lookup.ErrUnavailable):
		text = messages.ProviderError()
	default:
		var short *ledger.InsufficientCreditsError
		if errors.As(err, &short) {
			bh.sendHTML(ctx, b, chatID, messages.InsufficientCredits(short.Shortfall()))
			return
		}
		log.Printf("Lookup failed: %v", err)
		text = messages.ErrorDefault()
	}
	if refunded {
		text = text + "\n" + messages.RefundLine()
	}
	bh.sendHTML(ctx, b, chatID, text)
}
