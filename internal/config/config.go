package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"pushup-bot/internal/logging"
	"pushup-bot/internal/report"
	"pushup-bot/internal/repository"
)

// DefaultSQLiteFile - имя базы SQLite в каталоге данных, если SQLITE_PATH не задан
const DefaultSQLiteFile = "pushups.db"

// Config - настройки бота. Каждый флаг можно задать переменной окружения.
type Config struct {
	Version kong.VersionFlag `help:"Show version and exit."`

	Token  string `name:"token" env:"BOT_TOKEN,TELEGRAM_BOT_TOKEN" help:"Telegram bot token."`
	APIURL string `name:"api-url" env:"BOT_API_URL" help:"Bot API server URL (default: api.telegram.org)."`

	PollTimeout time.Duration `name:"poll-timeout" env:"POLL_TIMEOUT" default:"10s" help:"Long polling timeout."`
	Goals       bool          `name:"goals" env:"GOALS_ENABLED" default:"true" negatable:"" help:"Enable personal daily goals (/setgoal)."`

	Storage    string `name:"storage" env:"STORAGE_BACKEND" default:"file" enum:"file,sqlite" help:"Storage backend (file, sqlite)."`
	DataDir    string `name:"data-dir" env:"DATA_DIR" default:"data" help:"Directory for JSON data files."`
	SQLitePath string `name:"sqlite-path" env:"SQLITE_PATH" help:"SQLite database path (default: <data-dir>/pushups.db)."`

	LogLevel    string `name:"log-level" env:"LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)."`
	MetricsAddr string `name:"metrics-addr" env:"METRICS_ADDR" help:"Address for the Prometheus /metrics endpoint (disabled when empty)."`

	ReportChat int64  `name:"report-chat" env:"REPORT_CHAT" help:"Chat ID for the daily stats report (disabled when 0)."`
	ReportAt   string `name:"report-at" env:"REPORT_AT" default:"21:00" help:"Local time of the daily report (HH:MM)."`
}

// Validate проверяет настройки. Без токена бот не запускается.
// Пустой SQLitePath выводится из DataDir.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return errors.New("BOT_TOKEN environment variable is required")
	}

	if c.SQLitePath == "" && c.DataDir != "" {
		c.SQLitePath = filepath.Join(c.DataDir, DefaultSQLiteFile)
	}

	switch c.Storage {
	case repository.BackendFile:
		if c.DataDir == "" {
			return errors.New("file storage requires DATA_DIR to be set")
		}
	case repository.BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite storage requires SQLITE_PATH to be set")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND: %q", c.Storage)
	}

	if c.PollTimeout <= 0 {
		return errors.New("POLL_TIMEOUT must be positive")
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.ReportChat != 0 {
		if _, _, err := report.ParseTime(c.ReportAt); err != nil {
			return err
		}
	}

	return nil
}

// LoadDotEnv загружает переменные из .env (или указанных файлов).
// Уже заданные переменные окружения не перезаписываются.
// Отсутствие файла не считается ошибкой: возвращается false.
func LoadDotEnv(files ...string) (bool, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return false, nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", strings.Join(existing, ", "), err)
	}
	return true, nil
}

// Parse разбирает аргументы командной строки и окружение в Config
func Parse(args []string, options ...kong.Option) (*Config, *kong.Context, error) {
	var cfg Config
	parser, err := kong.New(&cfg, append([]kong.Option{
		kong.Name("pushup-bot"),
		kong.Description("Telegram bot for counting push-ups in a group."),
		kong.UsageOnError(),
	}, options...)...)
	if err != nil {
		return nil, nil, err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return nil, nil, err
	}
	return &cfg, ctx, nil
}
