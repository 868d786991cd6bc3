package messages

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const ParseModeHTML = "HTML"

// Telegram rejects messages longer than this.
const MaxMessageLen = 4096

func Escape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(strings.TrimSpace(s))
}

func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/A"
	}
	return Escape(s)
}

// Split cuts a long message into Telegram-sized chunks. Cuts land on a
// newline when one fits in the chunk, and never inside a rune, so every
// part stays valid UTF-8 and the HTML tags the formatters emit (always
// confined to one line) are never torn apart.
func Split(text string) []string {
	if len(text) <= MaxMessageLen {
		return []string{text}
	}
	parts := make([]string, 0, len(text)/MaxMessageLen+1)
	for len(text) > MaxMessageLen {
		cut := splitPoint(text)
		parts = append(parts, text[:cut])
		text = text[cut:]
	}
	if len(text) > 0 {
		parts = append(parts, text)
	}
	return parts
}

func splitPoint(text string) int {
	cut := MaxMessageLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == 0 {
		return MaxMessageLen
	}
	if nl := strings.LastIndexByte(text[:cut], '\n'); nl > 0 {
		return nl + 1
	}
	return cut
}

func Welcome(firstName string) string {
	return fmt.Sprintf("👋 <b>Welcome %s!</b>\n\n"+
		"🎁 You have received 24 hours FREE premium access and a starting credit balance.\n\n"+
		"📊 Available commands:\n"+
		"/aadhaar &lt;number&gt; - Aadhaar information\n"+
		"/vehicle &lt;number&gt; - Vehicle information\n"+
		"/phone &lt;number&gt; - Pakistan phone information\n\n"+
		"⚠️ Please join our channel first to verify yourself.", Escape(firstName))
}

func WelcomeBack(firstName string) string {
	return fmt.Sprintf("👋 <b>Welcome back %s!</b>\n\n"+
		"📊 Available commands:\n"+
		"/aadhaar &lt;number&gt; - Aadhaar information\n"+
		"/vehicle &lt;number&gt; - Vehicle information\n"+
		"/phone &lt;number&gt; - Pakistan phone information\n\n"+
		"Check your access with /premium_status", Escape(firstName))
}

func JoinPrompt() string {
	return "⚠️ Please join our channel and click verify:"
}

func VerifySucceeded() string {
	return "✅ <b>Verification successful!</b>\nYou can now use all lookups."
}

func VerifyFailed() string {
	return "❌ Please join the channel first!"
}

func VerifyError() string {
	return "❌ Error verifying join. Please try again."
}

func ErrorDefault() string {
	return "🚫 <b>Something went wrong</b>\nPlease try again."
}

func ErrorUnknownCommand() string {
	return "❓ <b>Command not found</b>"
}

func NotVerified() string {
	return "❌ Please verify joining our channel first using /start"
}

func AccessExpired(supportHandle string) string {
	return "❌ <b>Your premium access has expired.</b>\n" +
		fmt.Sprintf("💎 Contact %s to upgrade to premium.", Escape(supportHandle))
}

func InsufficientCredits(shortfall int) string {
	return fmt.Sprintf("❌ <b>Not enough credits</b> - you are %d short.\n"+
		"👥 Invite friends with your referral link to earn more: /referral", shortfall)
}

func LookupTimeout() string {
	return "⏰ Request timeout. Please try again."
}

func ProviderError() string {
	return "🚫 <b>Lookup service unavailable.</b> Please try again."
}

func MalformedResponse() string {
	return "🚫 <b>Invalid response from the lookup service.</b> Please try again."
}

func NoRecordFound() string {
	return "❌ No information found for this number."
}

func RefundLine() string {
	return "💳 Your credits have been refunded."
}

func Fetching(what string) string {
	return fmt.Sprintf("🔍 Fetching %s information...", Escape(what))
}

func UsageAadhaar() string {
	return "❌ Please provide an Aadhaar number\nUsage: /aadhaar 123456789012"
}

func InvalidAadhaar() string {
	return "❌ Invalid Aadhaar number. Must be 12 digits."
}

func UsageVehicle() string {
	return "❌ Please provide a vehicle number\nUsage: /vehicle MH02FZ0555"
}

func InvalidVehicle() string {
	return "❌ Invalid vehicle number."
}

func UsagePhone() string {
	return "❌ Please provide a phone number\nUsage: /phone 3003658169"
}

func InvalidPhone() string {
	return "❌ Invalid phone number."
}

func PremiumStatusActive(until time.Time, remaining time.Duration) string {
	hours := int(remaining.Hours())
	days := hours / 24
	var left string
	if days > 0 {
		left = fmt.Sprintf("%d days %d hours", days, hours%24)
	} else {
		left = fmt.Sprintf("%d hours", hours)
	}
	return "💎 <b>Premium status:</b> ✅ ACTIVE\n" +
		fmt.Sprintf("⏰ <b>Expires in:</b> %s\n", left) +
		fmt.Sprintf("📅 <b>Expiry date:</b> %s", until.UTC().Format("2006-01-02 15:04:05"))
}

func PremiumStatusExpired(credits int, supportHandle string) string {
	return "💎 <b>Premium status:</b> ❌ EXPIRED\n" +
		fmt.Sprintf("💳 <b>Credits:</b> %d\n\n", credits) +
		"⚠️ Your free access has expired.\n" +
		fmt.Sprintf("💎 Contact %s to upgrade to premium.", Escape(supportHandle))
}

func PremiumExpiredNotice(supportHandle string) string {
	return "❌ Your free access has expired. " +
		fmt.Sprintf("Contact %s to upgrade to premium.", Escape(supportHandle))
}

func ReferralRewardNotice(reward int) string {
	return fmt.Sprintf("🎉 A friend joined with your referral link - %d credits added!", reward)
}

func ReferralInfo(botUsername, code string, reward int) string {
	return "👥 <b>Your referral link</b>\n" +
		fmt.Sprintf("https://t.me/%s?start=%s\n\n", Escape(botUsername), Escape(code)) +
		fmt.Sprintf("🎁 You earn %d credits for every friend who joins.", reward)
}

func Help() string {
	return "🤖 <b>OSINT Bot Help</b>\n\n" +
		"/start - start the bot and get your free trial\n" +
		"/aadhaar &lt;number&gt; - Aadhaar information\n" +
		"/vehicle &lt;number&gt; - Vehicle information\n" +
		"/phone &lt;number&gt; - Pakistan phone information\n" +
		"/premium_status - check your access\n" +
		"/referral - your referral link\n" +
		"/help - this message"
}

func AdminPremiumGranted(userID int64, days int) string {
	return fmt.Sprintf("✅ Premium granted to user %d for %d days", userID, days)
}

func AdminPremiumNotice(days int) string {
	return fmt.Sprintf("🎉 You have been granted %d days premium access!\n\n"+
		"You can now use all features without restrictions.", days)
}

func AdminCreditsAdjusted(userID int64, delta int) string {
	return fmt.Sprintf("✅ Credits of user %d adjusted by %+d", userID, delta)
}

func AdminUserNotFound() string {
	return "❌ User not found"
}

func AdminUsagePremium() string {
	return "❌ Usage: /premium &lt;user_id&gt; [days]"
}

func AdminUsageCredits() string {
	return "❌ Usage: /credits &lt;user_id&gt; &lt;delta&gt;"
}

func AdminUsageBroadcast() string {
	return "❌ Usage: /broadcast &lt;message&gt;"
}

func BroadcastStarted(total int) string {
	return fmt.Sprintf("📢 Broadcasting to %d users...", total)
}

func BroadcastBody(text string) string {
	return "📢 <b>Announcement:</b>\n\n" + Escape(text)
}

func BroadcastReport(ok, failed int) string {
	return fmt.Sprintf("📊 <b>Broadcast complete</b>\n✅ Success: %d\n❌ Failed: %d", ok, failed)
}

func StatsReport(total, premium, verified, referrals int, channel string) string {
	return "📊 <b>Bot statistics</b>\n\n" +
		fmt.Sprintf("👥 Total users: %d\n", total) +
		fmt.Sprintf("💎 Premium users: %d\n", premium) +
		fmt.Sprintf("✅ Verified users: %d\n", verified) +
		fmt.Sprintf("🤝 Referrals: %d\n", referrals) +
		fmt.Sprintf("🔗 Force join channel: %s", Escape(channel))
}
