// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prompt

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// maxAttempts bounds how often an invalid numeric answer is asked again
const maxAttempts = 5

var _ Confirmer = (*Terminal)(nil)

// 🖥️ Terminal is an interactive Confirmer backed by pterm
type Terminal struct {
	input   func(label, def string) (string, bool, error)
	confirm func(msg string) (bool, bool, error)
}

// NewTerminal creates a Terminal reading from the controlling terminal
func NewTerminal() *Terminal {
	return &Terminal{
		input:   ptermInput,
		confirm: ptermConfirm,
	}
}

// ptermInput returns the entered text and whether the prompt was interrupted
func ptermInput(label, def string) (string, bool, error) {
	interrupted := false
	text, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(def).
		WithOnInterruptFunc(func() { interrupted = true }).
		Show(label)
	return text, interrupted, err
}

func ptermConfirm(msg string) (bool, bool, error) {
	interrupted := false
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		WithConfirmText("Accept").
		WithRejectText("Abort").
		WithOnInterruptFunc(func() { interrupted = true }).
		Show(msg)
	return ok, interrupted, err
}

func (t *Terminal) RequestNumericParameter(ctx context.Context, label string, def float64) (float64, error) {
	logger := zerolog.Ctx(ctx)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, interrupted, err := t.input(label, FormatNumber(def))
		if err != nil {
			return 0, errors.Errorf("reading %s: %w", label, err)
		}
		if interrupted {
			return 0, errors.WithStack(ErrAborted)
		}

		v, err := ParseNonNegative(text)
		if err == nil {
			logger.Debug().Str("label", label).Float64("value", v).Msg("numeric parameter entered")
			return v, nil
		}

		logger.Debug().Err(err).Int("attempt", attempt).Msg("rejected numeric input")
		pterm.Warning.Println("Please enter a valid non-negative number")
	}

	return 0, errors.Errorf("no valid value for %s after %d attempts: %w", label, maxAttempts, ErrAborted)
}

func (t *Terminal) RequestAcceptOrAbort(ctx context.Context, msg string) error {
	ok, interrupted, err := t.confirm(msg)
	if err != nil {
		return errors.Errorf("reading confirmation: %w", err)
	}
	if interrupted || !ok {
		zerolog.Ctx(ctx).Debug().Bool("interrupted", interrupted).Msg("operator aborted")
		return errors.WithStack(ErrAborted)
	}
	return nil
}

// 🔢 ParseNonNegative parses an operator answer. Blank input is zero.
func ParseNonNegative(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, errors.Errorf("parsing %q: %w", text, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("value %s is not a finite number", text)
	}
	if v < 0 {
		return 0, errors.Errorf("value %s is negative", text)
	}
	return v, nil
}

// FormatNumber renders v without trailing zeros, 5 becomes "5" and 2.5 stays "2.5"
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
