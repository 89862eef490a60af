package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dailypack/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// sendTimeout bounds a Bot API call when no client is supplied
const sendTimeout = 15 * time.Second

// Telegram sends a short run summary to a chat
type Telegram struct {
	bot    *tele.Bot
	chatID int64
}

// NewTelegram creates an offline bot client; apiURL overrides the Bot API base when not empty
func NewTelegram(token string, chatID int64, apiURL string, client *http.Client) (*Telegram, error) {
	if client == nil {
		client = &http.Client{Timeout: sendTimeout}
	}
	bot, err := tele.NewBot(tele.Settings{
		URL:     apiURL,
		Token:   token,
		Client:  client,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

// Notify sends the run summary message. It returns as soon as ctx is done; the bot call itself is bounded by the client timeout.
func (t *Telegram) Notify(ctx context.Context, run domain.Run, pack *domain.DailyPack) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("telegram message not sent: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := t.bot.Send(tele.ChatID(t.chatID), FormatMessage(run, pack), tele.NoPreview)
		done <- err
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("telegram message not sent: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
		return nil
	}
}

// FormatMessage renders the chat text for a run
func FormatMessage(run domain.Run, pack *domain.DailyPack) string {
	words := make([]string, 0, len(pack.Words))
	for _, w := range pack.Words {
		words = append(words, w.Text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s · %s\n\n", pack.Date, pack.Theme)
	fmt.Fprintf(&b, "🔤 %s\n", strings.Join(words, ", "))
	fmt.Fprintf(&b, "📖 %s\n", pack.Story.Title)
	if n := run.Placeholders(); n > 0 {
		fmt.Fprintf(&b, "🖼 %d/%d images are placeholders (%s)\n", n, len(run.Images), run.Provider)
	} else {
		fmt.Fprintf(&b, "🖼 %d images from %s\n", len(run.Images), run.Provider)
	}
	return b.String()
}
