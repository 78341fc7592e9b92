package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultGoal - дневная норма, если пользователь не задал свою цель
const DefaultGoal = 100

// DateLayout - формат ключа дня (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Today возвращает дату в локальной зоне хоста в формате YYYY-MM-DD
func Today(now time.Time) string {
	return now.Local().Format(DateLayout)
}

// ErrTotalOverflow - сумма за день не помещается в int
var ErrTotalOverflow = errors.New("daily total overflows")

// RepetitionLog - журнал подходов: день -> пользователь -> повторения по порядку вызовов /push.
// Записи только добавляются, изменение и удаление не предусмотрены.
type RepetitionLog struct {
	days Ordered[Ordered[[]int]]
}

// NewRepetitionLog создает пустой журнал
func NewRepetitionLog() *RepetitionLog {
	return &RepetitionLog{}
}

// Append добавляет подход пользователя за день и возвращает сумму за этот день
func (l *RepetitionLog) Append(date, user string, reps int) (int, error) {
	if reps <= 0 {
		return 0, fmt.Errorf("reps must be positive, got %d", reps)
	}

	day, _ := l.days.Get(date)
	sets, _ := day.Get(user)
	total := sum(sets)
	if total > math.MaxInt-reps {
		return 0, fmt.Errorf("%w: %s on %s", ErrTotalOverflow, user, date)
	}

	sets = append(sets, reps)
	day.Set(user, sets)
	l.days.Set(date, day)

	return total + reps, nil
}

// HasDay сообщает, есть ли за день хотя бы один пользователь с подходами
func (l *RepetitionLog) HasDay(date string) bool {
	day, ok := l.days.Get(date)
	return ok && day.Len() > 0
}

// Users возвращает пользователей дня в порядке их первого подхода
func (l *RepetitionLog) Users(date string) []string {
	day, _ := l.days.Get(date)
	return day.Keys()
}

// Sets возвращает копию подходов пользователя за день
func (l *RepetitionLog) Sets(date, user string) []int {
	day, _ := l.days.Get(date)
	sets, _ := day.Get(user)
	out := make([]int, len(sets))
	copy(out, sets)
	return out
}

// Total возвращает сумму повторений пользователя за день
func (l *RepetitionLog) Total(date, user string) int {
	day, _ := l.days.Get(date)
	sets, _ := day.Get(user)
	return sum(sets)
}

// Dates возвращает дни в порядке появления в журнале
func (l *RepetitionLog) Dates() []string {
	return l.days.Keys()
}

func (l RepetitionLog) MarshalJSON() ([]byte, error) {
	return l.days.MarshalJSON()
}

func (l *RepetitionLog) UnmarshalJSON(data []byte) error {
	return l.days.UnmarshalJSON(data)
}

// GoalTable - дневные цели: день -> пользователь -> целевое количество.
// На один день у пользователя хранится только последняя установленная цель.
type GoalTable struct {
	days Ordered[Ordered[int]]
}

// NewGoalTable создает пустую таблицу целей
func NewGoalTable() *GoalTable {
	return &GoalTable{}
}

// Set устанавливает (перезаписывает) цель пользователя на день
func (g *GoalTable) Set(date, user string, goal int) error {
	if goal <= 0 {
		return fmt.Errorf("goal must be positive, got %d", goal)
	}

	day, _ := g.days.Get(date)
	day.Set(user, goal)
	g.days.Set(date, day)
	return nil
}

// Get возвращает цель пользователя на день, если она задана
func (g *GoalTable) Get(date, user string) (int, bool) {
	day, ok := g.days.Get(date)
	if !ok {
		return 0, false
	}
	return day.Get(user)
}

// Threshold возвращает цель пользователя на день или DefaultGoal.
// Второе значение false, если использована цель по умолчанию.
func (g *GoalTable) Threshold(date, user string) (int, bool) {
	if goal, ok := g.Get(date, user); ok {
		return goal, true
	}
	return DefaultGoal, false
}

func (g GoalTable) MarshalJSON() ([]byte, error) {
	return g.days.MarshalJSON()
}

func (g *GoalTable) UnmarshalJSON(data []byte) error {
	return g.days.UnmarshalJSON(data)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
