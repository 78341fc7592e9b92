package pushups

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pushup-bot/internal/command"
	"pushup-bot/internal/logging"
	"pushup-bot/internal/metrics"
	"pushup-bot/internal/models"
	"pushup-bot/internal/repository"
)

// ErrStorage оборачивает ошибки чтения и записи хранилища
var ErrStorage = errors.New("storage unavailable")

// Reply - результат команды: текст ответа и признаки для метрик и отчета
type Reply struct {
	Text     string
	Rejected bool // аргументы не прошли проверку, данные не менялись
	NoData   bool // за сегодня нет ни одного подхода
}

// Service реализует команды бота поверх репозитория.
// Каждая команда заново читает нужные документы и целиком записывает измененные.
type Service struct {
	repo    repository.Repository
	logger  logging.Logger
	metrics metrics.Recorder
	now     func() time.Time
	goals   bool
}

// Option настраивает Service
type Option func(*Service)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(recorder metrics.Recorder) Option {
	return func(s *Service) { s.metrics = recorder }
}

// WithGoals включает или выключает личные цели (/setgoal и сравнение с целью в /stats)
func WithGoals(enabled bool) Option {
	return func(s *Service) { s.goals = enabled }
}

// NewService создает сервис. По умолчанию цели включены.
func NewService(repo repository.Repository, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		logger:  logging.Nop(),
		metrics: metrics.NoopRecorder{},
		now:     time.Now,
		goals:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register регистрирует команды сервиса в роутере
func (s *Service) Register(r *command.Router) {
	r.Register(CmdStart, DescStart, s.handle(CmdStart, func(context.Context, command.Command) (Reply, error) {
		return s.Start(), nil
	}))
	r.Register(CmdHelp, DescHelp, s.handle(CmdHelp, func(context.Context, command.Command) (Reply, error) {
		return s.Help(), nil
	}))
	r.Register(CmdPush, DescPush, s.handle(CmdPush, func(ctx context.Context, cmd command.Command) (Reply, error) {
		return s.Push(ctx, cmd.Caller(), cmd.Args())
	}))
	r.Register(CmdStats, DescStats, s.handle(CmdStats, func(ctx context.Context, _ command.Command) (Reply, error) {
		return s.Stats(ctx)
	}))
	r.Register(CmdLog, DescLog, s.handle(CmdLog, func(ctx context.Context, _ command.Command) (Reply, error) {
		return s.Log(ctx)
	}))
	if s.goals {
		r.Register(CmdSetGoal, DescSetGoal, s.handle(CmdSetGoal, func(ctx context.Context, cmd command.Command) (Reply, error) {
			return s.SetGoal(ctx, cmd.Caller(), cmd.Args())
		}))
	}
}

// handle превращает метод сервиса в command.Handler: отвечает пользователю и пишет метрики
func (s *Service) handle(name string, fn func(context.Context, command.Command) (Reply, error)) command.Handler {
	return func(ctx context.Context, cmd command.Command) error {
		start := time.Now()

		reply, err := fn(ctx, cmd)
		if err != nil {
			s.metrics.ObserveCommand(name, metrics.OutcomeError, time.Since(start))
			return err
		}

		outcome := metrics.OutcomeOK
		if reply.Rejected {
			outcome = metrics.OutcomeRejected
		}
		s.metrics.ObserveCommand(name, outcome, time.Since(start))

		return cmd.Reply(reply.Text)
	}
}

// Start возвращает приветствие со списком команд
func (s *Service) Start() Reply {
	return Reply{Text: MsgStartIntro + "\n" + s.commandList()}
}

// Help возвращает список команд
func (s *Service) Help() Reply {
	return Reply{Text: MsgHelpIntro + "\n" + s.commandList()}
}

func (s *Service) commandList() string {
	lines := []string{
		"/push <число> — добавить подход с повторениями",
		"/stats — текущий прогресс",
		"/log — подробности подходов",
	}
	if s.goals {
		lines = append(lines, fmt.Sprintf("/setgoal <число> — цель на сегодня (по умолчанию %d)", models.DefaultGoal))
	}
	lines = append(lines, "/help — помощь")
	return strings.Join(lines, "\n")
}

// Push добавляет подход пользователя за сегодня
func (s *Service) Push(ctx context.Context, user string, args []string) (Reply, error) {
	count, rejection := parseCount(args, MsgPushUsage)
	if rejection != "" {
		return Reply{Text: rejection, Rejected: true}, nil
	}

	log, err := s.repo.LoadLog(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	today := s.today()
	total, err := log.Append(today, user, count)
	if errors.Is(err, models.ErrTotalOverflow) {
		return Reply{Text: MsgTooLarge, Rejected: true}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	if err := s.repo.SaveLog(ctx, log); err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.metrics.AddReps(count)
	s.logger.Debugf("🔍 %s: +%d, итого за %s: %d", user, count, today, total)

	return Reply{Text: fmt.Sprintf(MsgPushedTemplate, user, count, total)}, nil
}

// SetGoal устанавливает (перезаписывает) цель пользователя на сегодня
func (s *Service) SetGoal(ctx context.Context, user string, args []string) (Reply, error) {
	goal, rejection := parseCount(args, MsgSetGoalUsage)
	if rejection != "" {
		return Reply{Text: rejection, Rejected: true}, nil
	}

	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	today := s.today()
	if err := goals.Set(today, user, goal); err != nil {
		return Reply{}, err
	}

	if err := s.repo.SaveGoals(ctx, goals); err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.logger.Debugf("🔍 %s: цель на %s = %d", user, today, goal)

	return Reply{Text: fmt.Sprintf(MsgGoalSetTemplate, user, goal)}, nil
}

// Stats возвращает сумму за сегодня по каждому пользователю с отметкой выполнения нормы.
// Пользователи идут в порядке первого подхода за день.
func (s *Service) Stats(ctx context.Context) (Reply, error) {
	log, err := s.repo.LoadLog(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	today := s.today()
	if !log.HasDay(today) {
		return Reply{Text: MsgNoData, NoData: true}, nil
	}

	var goals *models.GoalTable
	if s.goals {
		if goals, err = s.repo.LoadGoals(ctx); err != nil {
			return Reply{}, fmt.Errorf("%w: %w", ErrStorage, err)
		}
	}

	lines := []string{fmt.Sprintf(MsgStatsHeaderTemplate, today)}
	for _, user := range log.Users(today) {
		total := log.Total(today, user)

		if goals == nil {
			lines = append(lines, fmt.Sprintf(MsgStatsLineTemplate, user, total, mark(total, models.DefaultGoal)))
			continue
		}

		goal, explicit := goals.Threshold(today, user)
		line := fmt.Sprintf(MsgStatsGoalLineTemplate, user, total, goal, mark(total, goal))
		if !explicit {
			line += MsgDefaultGoalNote
		}
		lines = append(lines, line)
	}

	return Reply{Text: strings.Join(lines, "\n")}, nil
}

// Log возвращает подходы каждого пользователя за сегодня в порядке добавления
func (s *Service) Log(ctx context.Context) (Reply, error) {
	log, err := s.repo.LoadLog(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	today := s.today()
	if !log.HasDay(today) {
		return Reply{Text: MsgNoData, NoData: true}, nil
	}

	lines := []string{fmt.Sprintf(MsgLogHeaderTemplate, today)}
	for _, user := range log.Users(today) {
		sets := log.Sets(today, user)
		values := make([]string, len(sets))
		for i, reps := range sets {
			values[i] = strconv.Itoa(reps)
		}
		lines = append(lines, fmt.Sprintf(MsgLogLineTemplate, user, strings.Join(values, ", ")))
	}

	return Reply{Text: strings.Join(lines, "\n")}, nil
}

func (s *Service) today() string {
	return models.Today(s.now())
}

func mark(total, goal int) string {
	if total >= goal {
		return MarkDone
	}
	return MarkMissed
}
