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

package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/medicallyplus/mplus/internal/kvstore"
	"github.com/medicallyplus/mplus/internal/wizard"
)

const leadPrefix = "lead/"

// ErrDuplicate is returned when a registration id was already stored.
var ErrDuplicate = errors.New("registration already stored")

// ErrUnknownLead is returned for an id the outbox does not hold.
var ErrUnknownLead = errors.New("no such lead")

// Outbox keeps registrations in a local store until someone exports them.
type Outbox struct {
	store  *kvstore.Store
	Logger *log.Logger
}

// OpenOutbox opens the outbox at dir. readOnly allows listing while
// another process has the store open for writing.
func OpenOutbox(dir string, readOnly bool) (*Outbox, error) {
	s, err := kvstore.Open(kvstore.Options{Dir: dir, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("opening lead outbox: %w", err)
	}
	return &Outbox{store: s, Logger: log.New(io.Discard)}, nil
}

// NewOutbox wraps an already open store.
func NewOutbox(s *kvstore.Store) *Outbox {
	return &Outbox{store: s, Logger: log.New(io.Discard)}
}

func leadKey(id string) []byte {
	return []byte(leadPrefix + id)
}

// Submit implements wizard.Submitter. A registration id is stored at most
// once.
func (o *Outbox) Submit(ctx context.Context, reg wizard.Registration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("encoding registration: %w", err)
	}
	if err := o.store.Put(leadKey(reg.ID), data, true); err != nil {
		if errors.Is(err, kvstore.ErrExists) {
			return fmt.Errorf("%w: %s", ErrDuplicate, reg.ID)
		}
		return fmt.Errorf("storing registration: %w", err)
	}
	o.Logger.Debug("lead stored", "id", reg.ID)
	return nil
}

// Get returns the registration stored under id.
func (o *Outbox) Get(id string) (wizard.Registration, error) {
	var reg wizard.Registration
	data, err := o.store.Get(leadKey(id))
	if errors.Is(err, kvstore.ErrNotFound) {
		return reg, fmt.Errorf("%w: %s", ErrUnknownLead, id)
	}
	if err != nil {
		return reg, err
	}
	if err := json.Unmarshal(data, &reg); err != nil {
		return reg, fmt.Errorf("decoding lead %s: %w", id, err)
	}
	return reg, nil
}

// List returns every stored registration, oldest first.
func (o *Outbox) List() ([]wizard.Registration, error) {
	var regs []wizard.Registration
	err := o.store.Scan([]byte(leadPrefix), func(key, value []byte) error {
		var reg wizard.Registration
		if err := json.Unmarshal(value, &reg); err != nil {
			return fmt.Errorf("decoding %s: %w", key, err)
		}
		regs = append(regs, reg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].SubmittedAt.Before(regs[j].SubmittedAt)
	})
	return regs, nil
}

// Count returns the number of stored registrations.
func (o *Outbox) Count() (int, error) {
	return o.store.Count([]byte(leadPrefix))
}

// Delete removes the registration stored under id.
func (o *Outbox) Delete(id string) error {
	if _, err := o.store.Get(leadKey(id)); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownLead, id)
		}
		return err
	}
	return o.store.Delete(leadKey(id))
}

// Close closes the underlying store.
func (o *Outbox) Close() error {
	return o.store.Close()
}
