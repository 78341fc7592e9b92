package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushup-bot/internal/models"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	fileBackend, err := NewFileBackend(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	sqliteBackend, err := NewSQLiteBackend(context.Background(), filepath.Join(t.TempDir(), "db", "pushups.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteBackend.Close() })

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   fileBackend,
		"sqlite": sqliteBackend,
	}
}

func TestLoadEmpty(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(backend)
			ctx := context.Background()

			log, err := store.LoadLog(ctx)
			require.NoError(t, err)
			assert.Empty(t, log.Dates())

			goals, err := store.LoadGoals(ctx)
			require.NoError(t, err)
			_, ok := goals.Get("2024-03-05", "Alice")
			assert.False(t, ok)

			// повторная загрузка тоже не падает
			_, err = store.LoadLog(ctx)
			require.NoError(t, err)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(backend)
			ctx := context.Background()

			log := models.NewRepetitionLog()
			_, err := log.Append("2024-03-05", "Зоя 💪", 25)
			require.NoError(t, err)
			_, err = log.Append("2024-03-05", "Alice", 30)
			require.NoError(t, err)
			_, err = log.Append("2024-03-05", "Зоя 💪", 15)
			require.NoError(t, err)
			require.NoError(t, store.SaveLog(ctx, log))

			goals := models.NewGoalTable()
			require.NoError(t, goals.Set("2024-03-05", "Зоя 💪", 60))
			require.NoError(t, store.SaveGoals(ctx, goals))

			loaded, err := store.LoadLog(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Зоя 💪", "Alice"}, loaded.Users("2024-03-05"))
			assert.Equal(t, []int{25, 15}, loaded.Sets("2024-03-05", "Зоя 💪"))

			loadedGoals, err := store.LoadGoals(ctx)
			require.NoError(t, err)
			goal, ok := loadedGoals.Get("2024-03-05", "Зоя 💪")
			require.True(t, ok)
			assert.Equal(t, 60, goal)
		})
	}
}

func TestUnicodeNamesStoredVerbatim(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend)
	ctx := context.Background()
	name := "Ёжик <Ølaf> & 李"

	log := models.NewRepetitionLog()
	_, err := log.Append("2024-03-05", name, 10)
	require.NoError(t, err)
	require.NoError(t, store.SaveLog(ctx, log))

	raw, err := backend.Read(ctx, LogDocument)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"`+name+`"`)

	loaded, err := store.LoadLog(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Users("2024-03-05"), 1)
	assert.Equal(t, []byte(name), []byte(loaded.Users("2024-03-05")[0]))
}

func TestSavedDocumentIsIndented(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	store := NewStore(backend)

	log := models.NewRepetitionLog()
	_, err = log.Append("2024-03-05", "Alice", 30)
	require.NoError(t, err)
	_, err = log.Append("2024-03-05", "Alice", 40)
	require.NoError(t, err)
	require.NoError(t, store.SaveLog(context.Background(), log))

	data, err := os.ReadFile(filepath.Join(dir, LogDocument))
	require.NoError(t, err)

	expected := "{\n  \"2024-03-05\": {\n    \"Alice\": [\n      30,\n      40\n    ]\n  }\n}\n"
	assert.Equal(t, expected, string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	info, err := os.Stat(filepath.Join(dir, LogDocument))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestFileBackendConcurrentWriters(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	store := NewStore(backend)
	ctx := context.Background()

	const writers = 8
	const rounds = 25

	errs := make(chan error, writers*rounds)
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				log, err := store.LoadLog(ctx)
				if err != nil {
					errs <- err
					continue
				}
				if _, err := log.Append("2024-03-05", user, i+1); err != nil {
					errs <- err
					continue
				}
				if err := store.SaveLog(ctx, log); err != nil {
					errs <- err
				}
			}
		}(fmt.Sprintf("user-%d", w))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	// последняя запись целиком заменяет документ
	log, err := store.LoadLog(ctx)
	require.NoError(t, err)
	assert.True(t, log.HasDay("2024-03-05"))

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestLoadCorruptDocument(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, LogDocument, []byte(`{"2024-03-05": [`)))

	_, err := NewStore(backend).LoadLog(ctx)
	assert.Error(t, err)
}

func TestLoadDocumentWithTrailingGarbage(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, LogDocument, []byte("{\"2024-03-05\":{\"A\":[1]}}\n  ]\n}\n")))

	_, err := NewStore(backend).LoadLog(ctx)
	assert.Error(t, err)
}

func TestLoadBlankDocument(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.Write(ctx, GoalsDocument, []byte("  \n")))

	goals, err := NewStore(backend).LoadGoals(ctx)
	require.NoError(t, err)
	_, ok := goals.Get("2024-03-05", "Alice")
	assert.False(t, ok)
}

func TestSQLiteBackendPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pushups.db")

	first, err := NewSQLiteBackend(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Write(ctx, GoalsDocument, []byte(`{"a":1}`)))
	require.NoError(t, first.Write(ctx, GoalsDocument, []byte(`{"a":2}`)))
	require.NoError(t, first.Close())

	second, err := NewSQLiteBackend(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	data, err := second.Read(ctx, GoalsDocument)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	_, err = second.Read(ctx, LogDocument)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, BackendFile, filepath.Join(dir, "data"), "")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, BackendSQLite, "", filepath.Join(dir, "pushups.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = Open(ctx, "redis", dir, "")
	assert.Error(t, err)
}
