package command

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownCommand возвращается Dispatch для незарегистрированной команды
var ErrUnknownCommand = errors.New("unknown command")

// Command - входящая команда от платформы: имя без слеша, аргументы,
// отображаемое имя вызвавшего пользователя и способ ответить в тот же чат.
type Command interface {
	Name() string
	Args() []string
	Caller() string
	Reply(text string) error
}

// Handler обрабатывает одну команду
type Handler func(ctx context.Context, cmd Command) error

// Entry - зарегистрированная команда
type Entry struct {
	Name        string
	Description string
	Handler     Handler
}

// Router сопоставляет имена команд обработчикам.
// Регистрация выполняется при старте, до начала приема сообщений.
type Router struct {
	entries []Entry
	index   map[string]int
}

// NewRouter создает пустой роутер
func NewRouter() *Router {
	return &Router{index: make(map[string]int)}
}

// Register добавляет команду. Повторная регистрация имени - ошибка программы.
func (r *Router) Register(name, description string, handler Handler) {
	if name == "" || handler == nil {
		panic("command: empty name or nil handler")
	}
	if _, exists := r.index[name]; exists {
		panic(fmt.Sprintf("command: %q registered twice", name))
	}

	r.index[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Description: description, Handler: handler})
}

// Dispatch вызывает обработчик команды cmd.Name()
func (r *Router) Dispatch(ctx context.Context, cmd Command) error {
	i, ok := r.index[cmd.Name()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name())
	}
	return r.entries[i].Handler(ctx, cmd)
}

// Commands возвращает команды в порядке регистрации
func (r *Router) Commands() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
