package bootstrap

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// InitBadger opens the on-disk layout database at path.
func InitBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	// Layout documents are tiny.
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open layout store %s: %w", path, err)
	}
	return db, nil
}
