package notify

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"signal_bot/pkg/logger"
)

// Notifier: best-effort отправка в фиксированный чат.
// Ошибки логируются внутри и наружу не уходят.
type Notifier interface {
	Notify(ctx context.Context, text, imagePath string)
}

// Telegram: нотифайер + команды /start, /status (см. commands.go).
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64

	cmd *Commands
}

func NewTelegram(token string, chatID int64, cmd *Commands) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:    b,
		chatID: chatID,
		cmd:    cmd,
	}, nil
}

func (t *Telegram) Notify(ctx context.Context, text, imagePath string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	// остановка процесса: не шлём
	if err := ctx.Err(); err != nil {
		logger.Error("[TG] alert dropped: %v: %s", err, firstLine(text))
		return
	}

	var err error
	if imagePath != "" {
		photo := tgbot.NewPhoto(t.chatID, tgbot.FilePath(imagePath))
		photo.Caption = text
		_, err = t.bot.Send(photo)
	} else {
		_, err = t.bot.Send(tgbot.NewMessage(t.chatID, text))
	}
	if err != nil {
		logger.Error("[TG] sending alert: %v", err)
		return
	}
	logger.Info("[TG] sent: %s", firstLine(text))
}

// Start: long-polling для messages + callback_query.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "callback_query"}

	updates := t.bot.GetUpdatesChan(u)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				t.handleUpdate(ctx, upd)
			}
		}
	}()
	return nil
}

func (t *Telegram) Stop() {
	if t == nil || t.bot == nil {
		return
	}
	t.bot.StopReceivingUpdates()
}

func (t *Telegram) handleUpdate(ctx context.Context, upd tgbot.Update) {
	if t.cmd == nil {
		return
	}
	if cb := upd.CallbackQuery; cb != nil {
		// ответ Telegram для остановки спиннера
		_, _ = t.bot.Request(tgbot.NewCallback(cb.ID, ""))
		if cb.Message == nil || cb.Message.Chat == nil || cb.Message.Chat.ID != t.chatID {
			return
		}
		data := cb.Data
		go func() {
			text, img := t.cmd.HandleCallback(ctx, data)
			t.reply(ctx, text, img)
		}()
		return
	}

	msg := upd.Message
	if msg == nil || msg.Chat == nil || msg.Chat.ID != t.chatID || !msg.IsCommand() {
		return
	}
	switch msg.Command() {
	case "start":
		out := tgbot.NewMessage(t.chatID, "Select an index:")
		out.ReplyMarkup = t.indexKeyboard()
		if _, err := t.bot.Send(out); err != nil {
			logger.Error("[TG] /start: %v", err)
		}
	case "status":
		t.reply(ctx, t.cmd.Status(), "")
	}
}

// reply отправляет ответ команды и убирает временный график.
func (t *Telegram) reply(ctx context.Context, text, imagePath string) {
	t.Notify(ctx, text, imagePath)
	if imagePath != "" {
		t.cmd.charts.Cleanup(imagePath)
	}
}

func (t *Telegram) indexKeyboard() tgbot.InlineKeyboardMarkup {
	rows := make([][]tgbot.InlineKeyboardButton, 0, len(t.cmd.symbols))
	for _, s := range t.cmd.symbols {
		rows = append(rows, tgbot.NewInlineKeyboardRow(
			tgbot.NewInlineKeyboardButtonData(s.Name, callbackPrefix+s.Name),
		))
	}
	return tgbot.NewInlineKeyboardMarkup(rows...)
}

// Stdout: заглушка, всё логирует.
type Stdout struct{}

func NewStdout() *Stdout { return &Stdout{} }

func (s *Stdout) Notify(_ context.Context, text, imagePath string) {
	if imagePath != "" {
		logger.Info("[NOTIFY] %s (chart: %s)", text, imagePath)
		return
	}
	logger.Info("[NOTIFY] %s", text)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
