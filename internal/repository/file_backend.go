package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend хранит каждый документ в отдельном JSON-файле в каталоге данных
type FileBackend struct {
	dataDir string
}

// NewFileBackend создает файловый бэкенд
func NewFileBackend(dataDir string) (*FileBackend, error) {
	// Создаем директорию, если её нет
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileBackend{dataDir: dataDir}, nil
}

// Read читает документ. Отсутствующий файл - ErrNotFound.
func (b *FileBackend) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(b.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write перезаписывает документ через временный файл и переименование.
// У каждой записи свой временный файл, параллельные записи не мешают друг другу:
// выигрывает последняя.
func (b *FileBackend) Write(_ context.Context, name string, data []byte) error {
	f, err := os.CreateTemp(b.dataDir, name+".*.tmp")
	if err != nil {
		return err
	}
	tempFile := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	// CreateTemp создает файл с правами 0600
	if err := os.Chmod(tempFile, 0644); err != nil {
		os.Remove(tempFile)
		return err
	}

	if err := os.Rename(tempFile, b.path(name)); err != nil {
		os.Remove(tempFile)
		return err
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dataDir, name)
}
