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

package kvstore

import (
	"errors"
	"fmt"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{InMemory: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestPutAndGet(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put([]byte("lead/1"), []byte("v1"), false); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get([]byte("lead/1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get = %q, want %q", got, "v1")
	}
}

func TestPutCreateRefusesOverwrite(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put([]byte("k"), []byte("first"), true); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put([]byte("k"), []byte("second"), true); !errors.Is(err, ErrExists) {
		t.Errorf("second create error = %v, want ErrExists", err)
	}
	got, _ := s.Get([]byte("k"))
	if string(got) != "first" {
		t.Errorf("Get = %q, want first value kept", got)
	}
	if err := s.Put([]byte("k"), []byte("third"), false); err != nil {
		t.Errorf("overwrite: %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get([]byte("missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put([]byte("del"), []byte("val"), false); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete([]byte("del")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get([]byte("del")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete([]byte("never-there")); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestScanPrefixInKeyOrder(t *testing.T) {
	s := openTestStore(t)

	for _, k := range []string{"lead/c", "lead/a", "meta/x", "lead/b"} {
		if err := s.Put([]byte(k), []byte(k), false); err != nil {
			t.Fatalf("Put(%s): %v", k, err)
		}
	}

	var keys []string
	err := s.Scan([]byte("lead/"), func(key, _ []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if fmt.Sprint(keys) != "[lead/a lead/b lead/c]" {
		t.Errorf("Scan keys = %v", keys)
	}

	n, err := s.Count([]byte("lead/"))
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v; want 3", n, err)
	}
}

func TestScanStopsOnError(t *testing.T) {
	s := openTestStore(t)
	s.Put([]byte("a"), []byte("1"), false)
	s.Put([]byte("b"), []byte("2"), false)

	stop := errors.New("stop")
	var count int
	err := s.Scan(nil, func(_, _ []byte) error {
		count++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Scan error = %v, want stop", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestOpenDiskPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Options{Dir: dir})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Put([]byte("persist"), []byte("yes"), false); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ro, err := Open(Options{Dir: dir, ReadOnly: true})
	if err != nil {
		t.Fatalf("Reopen read-only: %v", err)
	}
	defer ro.Close()

	got, err := ro.Get([]byte("persist"))
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "yes" {
		t.Errorf("Get = %q, want %q", got, "yes")
	}
}
