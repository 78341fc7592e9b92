package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"pushup-bot/internal/command"
	"pushup-bot/internal/logging"
	"pushup-bot/internal/pushups"
)

// Bot представляет Telegram-бота: принимает команды и передает их в роутер
type Bot struct {
	bot    *tele.Bot
	router *command.Router
	logger logging.Logger

	mu  sync.Mutex
	ctx context.Context
}

// Option меняет настройки telebot перед созданием бота
type Option func(*tele.Settings)

// WithPollTimeout задает таймаут long polling
func WithPollTimeout(timeout time.Duration) Option {
	return func(s *tele.Settings) {
		s.Poller = &tele.LongPoller{Timeout: timeout}
	}
}

// WithAPIURL задает адрес Bot API (например, локального сервера telegram-bot-api)
func WithAPIURL(url string) Option {
	return func(s *tele.Settings) {
		if url != "" {
			s.URL = url
		}
	}
}

// NewBot создает нового бота и регистрирует обработчики всех команд роутера
func NewBot(token string, router *command.Router, logger logging.Logger, opts ...Option) (*Bot, error) {
	b := &Bot{
		router: router,
		logger: logger,
		ctx:    context.Background(),
	}

	// Настройки бота
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: BotPollerTimeout},
		OnError: func(err error, c tele.Context) {
			if c != nil {
				logger.Errorf("❌ Ошибка telebot (chat %d): %v", chatID(c), err)
				return
			}
			logger.Errorf("❌ Ошибка telebot: %v", err)
		},
	}
	for _, opt := range opts {
		opt(&pref)
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.bot = bot

	// Регистрируем обработчики команд
	b.registerHandlers()

	return b, nil
}

// Start публикует меню команд и принимает обновления, пока не отменен ctx.
// Если ctx уже отменен, сразу возвращается.
func (b *Bot) Start(ctx context.Context) {
	if ctx.Err() != nil {
		b.logger.Infof("Bot not started: %v", ctx.Err())
		return
	}

	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	if err := b.bot.SetCommands(b.menu()); err != nil {
		b.logger.Warnf("⚠️ Не удалось обновить меню команд: %v", err)
	}

	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()

	b.logger.Infof("Bot started as @%s", b.bot.Me.Username)
	b.bot.Start()
}

// Send отправляет текст в чат. Используется ежедневным отчетом.
func (b *Bot) Send(_ context.Context, chatID int64, text string) error {
	_, err := b.bot.Send(tele.ChatID(chatID), text)
	return err
}

// registerHandlers регистрирует все команды роутера как /<имя>
func (b *Bot) registerHandlers() {
	b.bot.Use(middleware.Recover())

	for _, entry := range b.router.Commands() {
		b.bot.Handle("/"+entry.Name, b.handleCommand(entry.Name))
	}
}

// handleCommand передает команду в роутер. Ошибка хранилища превращается в ответ пользователю,
// остальные ошибки (в том числе доставки ответа) уходят в OnError.
func (b *Bot) handleCommand(name string) tele.HandlerFunc {
	return func(c tele.Context) error {
		cmd := newTeleCommand(name, c)
		logger := b.logger.With(
			LogKeyRequestID, uuid.NewString(),
			LogKeyCommand, name,
			LogKeyUser, cmd.Caller(),
			LogKeyChat, chatID(c),
		)

		ctx, cancel := context.WithTimeout(b.baseContext(), HandlerTimeout)
		defer cancel()

		logger.Debugf("🔍 /%s %s", name, strings.Join(cmd.Args(), " "))

		err := b.router.Dispatch(ctx, cmd)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, pushups.ErrStorage):
			logger.Errorf("❌ Ошибка хранилища: %v", err)
			return c.Send(MsgErrorStorage)
		default:
			return fmt.Errorf("/%s: %w", name, err)
		}
	}
}

// menu возвращает список команд для меню Telegram
func (b *Bot) menu() []tele.Command {
	entries := b.router.Commands()
	commands := make([]tele.Command, 0, len(entries))
	for _, entry := range entries {
		commands = append(commands, tele.Command{Text: entry.Name, Description: entry.Description})
	}
	return commands
}

func (b *Bot) baseContext() context.Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx
}
