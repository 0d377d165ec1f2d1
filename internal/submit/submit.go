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

// Package submit delivers completed registrations to a lead target.
package submit

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/medicallyplus/mplus/internal/config"
	"github.com/medicallyplus/mplus/internal/wizard"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the submitter named by cfg.Target. The returned closer
// releases any store the submitter holds and must be called on exit.
func Open(cfg config.SubmissionConfig, logger *log.Logger) (wizard.Submitter, io.Closer, error) {
	switch cfg.Target {
	case config.TargetStub, "":
		return &Stub{Delay: cfg.Stub.Delay, FailFirst: cfg.Stub.FailFirst}, nopCloser{}, nil
	case config.TargetWebhook:
		return NewWebhook(cfg.Webhook.URL, cfg.Webhook.Timeout), nopCloser{}, nil
	case config.TargetOutbox:
		ob, err := OpenOutbox(config.OutboxDir(), false)
		if err != nil {
			return nil, nil, err
		}
		if logger != nil {
			ob.Logger = logger
		}
		return ob, ob, nil
	}
	return nil, nil, fmt.Errorf("unknown submission target %q", cfg.Target)
}
