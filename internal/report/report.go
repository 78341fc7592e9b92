package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"pushup-bot/internal/logging"
	"pushup-bot/internal/pushups"
)

// Sender отправляет текст в чат
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Source строит текст статистики за сегодня
type Source interface {
	Stats(ctx context.Context) (pushups.Reply, error)
}

// Reporter раз в день публикует статистику в заданный чат
type Reporter struct {
	scheduler gocron.Scheduler
	source    Source
	sender    Sender
	chatID    int64
	logger    logging.Logger
}

// New создает отчет с ежедневной задачей на время at (HH:MM, локальное время)
func New(source Source, sender Sender, chatID int64, at string, logger logging.Logger) (*Reporter, error) {
	hours, minutes, err := ParseTime(at)
	if err != nil {
		return nil, err
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	r := &Reporter{
		scheduler: s,
		source:    source,
		sender:    sender,
		chatID:    chatID,
		logger:    logger,
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hours, minutes, 0))),
		gocron.NewTask(r.run),
		gocron.WithName("daily-report"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create daily report job: %w", err)
	}

	return r, nil
}

// Start запускает планировщик
func (r *Reporter) Start() {
	r.logger.Infof("Daily report scheduled for chat %d", r.chatID)
	r.scheduler.Start()
}

// Stop останавливает планировщик
func (r *Reporter) Stop() error {
	return r.scheduler.Shutdown()
}

// Post отправляет статистику за сегодня. Если данных нет, ничего не отправляет.
func (r *Reporter) Post(ctx context.Context) error {
	reply, err := r.source.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}
	if reply.NoData {
		r.logger.Debugf("🔍 Нет данных за сегодня, отчет не отправлен")
		return nil
	}

	if err := r.sender.Send(ctx, r.chatID, reply.Text); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

func (r *Reporter) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := r.Post(ctx); err != nil {
		r.logger.Errorf("❌ Ошибка ежедневного отчета: %v", err)
	}
}

// ParseTime разбирает время в формате HH:MM
func ParseTime(at string) (uint, uint, error) {
	parts := strings.Split(strings.TrimSpace(at), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid report time %q, expected HH:MM", at)
	}

	hours, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || hours > 23 {
		return 0, 0, fmt.Errorf("invalid hours in report time %q", at)
	}
	minutes, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || minutes > 59 {
		return 0, 0, fmt.Errorf("invalid minutes in report time %q", at)
	}

	return uint(hours), uint(minutes), nil
}
