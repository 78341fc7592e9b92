package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushup-bot/internal/logging"
	"pushup-bot/internal/pushups"
	"pushup-bot/internal/repository"
)

type recordingSender struct {
	chatID int64
	texts  []string
	err    error
}

func (s *recordingSender) Send(_ context.Context, chatID int64, text string) error {
	if s.err != nil {
		return s.err
	}
	s.chatID = chatID
	s.texts = append(s.texts, text)
	return nil
}

func TestParseTime(t *testing.T) {
	h, m, err := ParseTime("21:05")
	require.NoError(t, err)
	assert.Equal(t, uint(21), h)
	assert.Equal(t, uint(5), m)

	h, m, err = ParseTime(" 0:00 ")
	require.NoError(t, err)
	assert.Equal(t, uint(0), h)
	assert.Equal(t, uint(0), m)

	for _, bad := range []string{"", "21", "24:00", "12:60", "ab:cd", "-1:10", "12:30:00"} {
		_, _, err := ParseTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestPost(t *testing.T) {
	now := time.Date(2024, time.March, 5, 21, 0, 0, 0, time.Local)
	store := repository.NewStore(repository.NewMemoryBackend())
	svc := pushups.NewService(store, pushups.WithClock(func() time.Time { return now }))
	sender := &recordingSender{}

	r, err := New(svc, sender, -100500, "21:00", logging.Nop())
	require.NoError(t, err)
	defer r.Stop()

	// без данных ничего не отправляется
	require.NoError(t, r.Post(context.Background()))
	assert.Empty(t, sender.texts)

	_, err = svc.Push(context.Background(), "Alice", []string{"120"})
	require.NoError(t, err)

	require.NoError(t, r.Post(context.Background()))
	require.Len(t, sender.texts, 1)
	assert.Equal(t, int64(-100500), sender.chatID)
	assert.Contains(t, sender.texts[0], "• Alice: 120/100 ✅")
}

func TestPostSendError(t *testing.T) {
	now := time.Date(2024, time.March, 5, 21, 0, 0, 0, time.Local)
	store := repository.NewStore(repository.NewMemoryBackend())
	svc := pushups.NewService(store, pushups.WithClock(func() time.Time { return now }))
	_, err := svc.Push(context.Background(), "Alice", []string{"10"})
	require.NoError(t, err)

	r, err := New(svc, &recordingSender{err: errors.New("network down")}, 1, "21:00", logging.Nop())
	require.NoError(t, err)
	defer r.Stop()

	assert.Error(t, r.Post(context.Background()))
}

func TestNewRejectsBadTime(t *testing.T) {
	_, err := New(nil, nil, 1, "25:00", logging.Nop())
	assert.Error(t, err)
}
