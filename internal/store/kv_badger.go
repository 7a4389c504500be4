package store

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/GregMSThompson/backup-dashboard/internal/errs"
)

type badgerKV struct {
	db *badger.DB
}

// NewBadgerKV stores layout documents in an embedded, machine-local BadgerDB.
func NewBadgerKV(db *badger.DB) *badgerKV {
	return &badgerKV{db: db}
}

func (s *badgerKV) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.NewDatabaseError("read", "failed to read layout key", err)
	}
	return string(value), true, nil
}

func (s *badgerKV) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return errs.NewDatabaseError("write", "failed to write layout key", err)
	}
	return nil
}

func (s *badgerKV) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete layout key", err)
	}
	return nil
}
