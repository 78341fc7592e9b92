package repository

import (
	"context"
	"fmt"
)

// Типы хранилища
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open создает Store с бэкендом нужного типа
func Open(ctx context.Context, kind, dataDir, sqlitePath string) (*Store, error) {
	var (
		backend Backend
		err     error
	)

	switch kind {
	case BackendFile, "":
		backend, err = NewFileBackend(dataDir)
	case BackendSQLite:
		backend, err = NewSQLiteBackend(ctx, sqlitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", kind)
	}
	if err != nil {
		return nil, err
	}

	return NewStore(backend), nil
}
