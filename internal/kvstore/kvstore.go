// mplus - MedicallyPlus Terminal Landing Experience
// Copyright (C) 2026 MedicallyPlus
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package kvstore is a small BadgerDB wrapper used as the local lead outbox.
package kvstore

import (
	"errors"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("key not found")

// Options configures a Store.
type Options struct {
	Dir      string // on-disk directory, ignored when InMemory is set
	InMemory bool
	ReadOnly bool // skips the directory lock so a running tour can keep writing
}

// Store wraps a Badger database.
type Store struct {
	db *badger.DB
}

// Open creates or opens a store. A value log left half written by a killed
// process is truncated by opening once in write mode before retrying.
func Open(opts Options) (*Store, error) {
	bopts := badgerOptions(opts)

	db, err := badger.Open(bopts)
	if err != nil && !opts.InMemory && needsTruncation(err) {
		rdb, rerr := badger.Open(badgerOptions(Options{Dir: opts.Dir}))
		if rerr != nil {
			return nil, fmt.Errorf("opening store %s: %w", opts.Dir, err)
		}
		if cerr := rdb.Close(); cerr != nil {
			return nil, cerr
		}
		db, err = badger.Open(bopts)
	}
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", opts.Dir, err)
	}

	s := &Store{db: db}
	if !opts.ReadOnly && !opts.InMemory {
		s.runGC()
	}
	return s, nil
}

func badgerOptions(opts Options) badger.Options {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil
	if opts.ReadOnly {
		bopts = bopts.WithReadOnly(true).WithBypassLockGuard(true)
	}
	return bopts
}

func needsTruncation(err error) bool {
	return strings.Contains(err.Error(), "Log truncate required") ||
		strings.Contains(err.Error(), "MANIFEST has unsupported version")
}

// Get returns the value stored at key or ErrNotFound.
func (s *Store) Get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

// Put stores value at key. With create set, an existing key is left
// untouched and ErrExists is returned.
func (s *Store) Put(key, value []byte, create bool) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if create {
			_, err := txn.Get(key)
			if err == nil {
				return fmt.Errorf("%w: %s", ErrExists, key)
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return txn.Set(key, value)
	})
}

// ErrExists is returned by Put in create mode for a key already present.
var ErrExists = errors.New("key already exists")

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Scan calls fn for every key under prefix in key order. It stops at the
// first error fn returns.
func (s *Store) Scan(prefix []byte, fn func(key, value []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of keys under prefix without reading values.
func (s *Store) Count(prefix []byte) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Close reclaims value log space and closes the database.
func (s *Store) Close() error {
	s.runGC()
	return s.db.Close()
}

// runGC rewrites value log files that are at least half garbage until
// Badger reports nothing left to collect.
func (s *Store) runGC() {
	for {
		if s.db.RunValueLogGC(0.5) != nil {
			return
		}
	}
}
