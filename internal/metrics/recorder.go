package metrics

import "time"

// Outcome - результат обработки команды
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected" // неверные аргументы, ответ с подсказкой
	OutcomeError    Outcome = "error"
)

// Recorder собирает метрики обработки команд.
// NoopRecorder используется, когда метрики не настроены.
type Recorder interface {
	ObserveCommand(command string, outcome Outcome, d time.Duration)
	AddReps(n int)
}

// NoopRecorder ничего не делает
type NoopRecorder struct{}

func (NoopRecorder) ObserveCommand(string, Outcome, time.Duration) {}
func (NoopRecorder) AddReps(int)                                   {}
