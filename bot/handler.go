package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tip-advisor/domain"
	"tip-advisor/service"
)

// Sender is the part of the Telegram API the handler needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Handler struct {
	api      Sender
	tips     *service.TipService
	sessions *service.SessionService
}

func NewHandler(api Sender, tips *service.TipService, sessions *service.SessionService) *Handler {
	return &Handler{api: api, tips: tips, sessions: sessions}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}

	msg := upd.Message
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch msg.Command() {
	case "start", "help":
		h.reply(msg.Chat.ID, helpText())
	case "tip":
		h.handleTip(msg.Chat.ID, msg.CommandArguments())
	case "suggest":
		h.handleSuggest(ctx, msg.Chat.ID, msg.CommandArguments())
	default:
		h.reply(msg.Chat.ID, "Unknown command. Send /help")
	}
}

func (h *Handler) handleTip(chatID int64, args string) {
	fields := strings.Fields(args)
	var billText, percentText string
	if len(fields) > 0 {
		billText = fields[0]
	}
	if len(fields) > 1 {
		percentText = fields[1]
	}

	result := h.tips.CalculateFromText(billText, percentText)
	h.reply(chatID, fmt.Sprintf("Tip: $%.2f\nTotal: $%.2f", result.TipAmount, result.TotalAmount))
}

func (h *Handler) handleSuggest(ctx context.Context, chatID int64, args string) {
	req, err := ParseSuggestArgs(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	sessionID := strconv.FormatInt(chatID, 10)
	if err := h.sessions.OpenSession(ctx, sessionID); err != nil {
		slog.Error("open chat session", "chat_id", chatID, "error", err)
		h.reply(chatID, "❌ Something went wrong, try again later")
		return
	}

	done, err := h.sessions.RequestSuggestion(ctx, sessionID, req)
	if errors.Is(err, service.ErrSuggestionInFlight) {
		h.reply(chatID, "⏳ Still working on your last suggestion...")
		return
	}
	if err != nil {
		slog.Error("request suggestion", "chat_id", chatID, "error", err)
		h.reply(chatID, "❌ Something went wrong, try again later")
		return
	}

	h.reply(chatID, "🤖 Thinking about a fair tip...")

	go func() {
		outcome, ok := <-done
		if ok {
			h.reply(chatID, outcome.Display())
		}
	}()
}

// ParseSuggestArgs reads "<bill> [quality] [group size]". The bill amount is
// coerced like the calculator fields; quality and group size are optional.
func ParseSuggestArgs(args string) (domain.TipRequest, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return domain.TipRequest{}, errors.New("usage: /suggest <bill> [Poor|Fair|Good|Excellent] [people]")
	}

	bill := service.ParseAmount(strings.TrimPrefix(fields[0], "$"))
	if bill < 0 || bill > service.MaxBillAmount {
		return domain.TipRequest{}, fmt.Errorf("bill amount must be between 0 and %.0f", service.MaxBillAmount)
	}

	req := domain.TipRequest{
		BillAmount:     bill,
		ServiceQuality: domain.ServiceGood,
		GroupSize:      service.DefaultGroupSize,
	}

	if len(fields) > 1 {
		quality, ok := parseQuality(fields[1])
		if !ok {
			return domain.TipRequest{}, fmt.Errorf("unknown service quality %q", fields[1])
		}
		req.ServiceQuality = quality
	}

	if len(fields) > 2 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n < 1 || n > service.MaxGroupSize {
			return domain.TipRequest{}, fmt.Errorf("group size must be between 1 and %d", service.MaxGroupSize)
		}
		req.GroupSize = n
	}

	return req, nil
}

func parseQuality(s string) (domain.ServiceQuality, bool) {
	for _, q := range domain.ServiceQualities {
		if strings.EqualFold(string(q), s) {
			return q, true
		}
	}
	return "", false
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Tip calculator\n\n")
	b.WriteString("/tip <bill> <percent> — tip and total\n")
	b.WriteString("/suggest <bill> [quality] [people] — AI tip suggestion\n\n")
	b.WriteString("Tipping guide:\n")
	for _, e := range domain.TipLegend {
		b.WriteString(fmt.Sprintf("%s: %d–%d%%\n", e.Quality, e.MinPercent, e.MaxPercent))
	}
	return b.String()
}

func (h *Handler) reply(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	if _, err := h.api.Send(m); err != nil {
		slog.Warn("telegram send failed", "chat_id", chatID, "error", err)
	}
}
