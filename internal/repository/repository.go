package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pushup-bot/internal/models"
)

// Имена документов в хранилище
const (
	LogDocument   = "pushup_data.json"
	GoalsDocument = "pushup_goals.json"
)

// ErrNotFound возвращается бэкендом, если документа еще нет
var ErrNotFound = errors.New("document not found")

// Repository определяет интерфейс для работы с данными бота.
// Каждый вызов читает или целиком перезаписывает документ, кэша между вызовами нет.
type Repository interface {
	LoadLog(ctx context.Context) (*models.RepetitionLog, error)
	SaveLog(ctx context.Context, log *models.RepetitionLog) error
	LoadGoals(ctx context.Context) (*models.GoalTable, error)
	SaveGoals(ctx context.Context, goals *models.GoalTable) error
}

// Backend хранит документы целиком по имени.
// Это позволяет легко заменить файловое хранение на БД или память.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Close() error
}

// Store реализует Repository поверх Backend, храня документы в JSON
type Store struct {
	backend Backend
}

// NewStore создает репозиторий поверх бэкенда
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// LoadLog загружает журнал подходов. Отсутствующий документ - пустой журнал.
func (s *Store) LoadLog(ctx context.Context) (*models.RepetitionLog, error) {
	log := models.NewRepetitionLog()
	if err := s.load(ctx, LogDocument, log); err != nil {
		return nil, err
	}
	return log, nil
}

// SaveLog перезаписывает журнал подходов целиком
func (s *Store) SaveLog(ctx context.Context, log *models.RepetitionLog) error {
	return s.save(ctx, LogDocument, log)
}

// LoadGoals загружает таблицу целей. Отсутствующий документ - пустая таблица.
func (s *Store) LoadGoals(ctx context.Context) (*models.GoalTable, error) {
	goals := models.NewGoalTable()
	if err := s.load(ctx, GoalsDocument, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// SaveGoals перезаписывает таблицу целей целиком
func (s *Store) SaveGoals(ctx context.Context, goals *models.GoalTable) error {
	return s.save(ctx, GoalsDocument, goals)
}

// Close закрывает бэкенд
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) load(ctx context.Context, name string, target json.Unmarshaler) error {
	data, err := s.backend.Read(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, name string, value any) error {
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	if err := s.backend.Write(ctx, name, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// encode пишет JSON с отступом в два пробела, не экранируя юникод и HTML-символы
func encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
