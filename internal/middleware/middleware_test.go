package middleware

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/RonjuVai/Osint-Bot/internal/contextkeys"
)

func TestResolveUserMiddleware(t *testing.T) {
	m := NewMessageAnalyzer()

	var gotID int64
	var called bool
	next := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		called = true
		gotID, _ = contextkeys.GetUserID(ctx)
	}

	m.ResolveUserMiddleware(next)(context.Background(), nil, &models.Update{
		Message: &models.Message{From: &models.User{ID: 42}},
	})
	if !called || gotID != 42 {
		t.Errorf("message update: called=%v id=%d, want 42", called, gotID)
	}

	called = false
	m.ResolveUserMiddleware(next)(context.Background(), nil, &models.Update{
		CallbackQuery: &models.CallbackQuery{From: models.User{ID: 7}},
	})
	if !called || gotID != 7 {
		t.Errorf("callback update: called=%v id=%d, want 7", called, gotID)
	}

	called = false
	m.ResolveUserMiddleware(next)(context.Background(), nil, &models.Update{})
	if called {
		t.Error("update without a user must be dropped")
	}
}

func TestAnalyzeMessageMiddleware(t *testing.T) {
	m := NewMessageAnalyzer()

	var gotType contextkeys.MessageType
	var gotData string
	next := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		gotType, _ = contextkeys.GetMessageType(ctx)
		gotData, _ = contextkeys.GetCallbackData(ctx)
	}

	m.AnalyzeMessageMiddleware(next)(context.Background(), nil, &models.Update{
		Message: &models.Message{Text: "/start"},
	})
	if gotType != contextkeys.MessageTypeCommand {
		t.Errorf("command text classified as %v", gotType)
	}

	m.AnalyzeMessageMiddleware(next)(context.Background(), nil, &models.Update{
		Message: &models.Message{Text: "123456789012"},
	})
	if gotType != contextkeys.MessageTypeText {
		t.Errorf("free text classified as %v", gotType)
	}

	m.AnalyzeMessageMiddleware(next)(context.Background(), nil, &models.Update{
		CallbackQuery: &models.CallbackQuery{Data: "verify_join"},
	})
	if gotType != contextkeys.MessageTypeClickButton || gotData != "verify_join" {
		t.Errorf("callback classified as %v with data %q", gotType, gotData)
	}

	m.AnalyzeMessageMiddleware(next)(context.Background(), nil, &models.Update{})
	if gotType != contextkeys.MessageTypeUnknown {
		t.Errorf("empty update classified as %v", gotType)
	}
}
