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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ Confirmer = (*Static)(nil)

// 📋 Static answers every request from preset values, for unattended runs
type Static struct {
	// Numeric holds preset answers by label; a missing label answers with the default
	Numeric map[string]float64
	// Accept answers every accept-or-abort request
	Accept bool
}

func (s *Static) RequestNumericParameter(ctx context.Context, label string, def float64) (float64, error) {
	v, ok := s.Numeric[label]
	if !ok {
		v = def
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("preset %s is not a finite number: %v", label, v)
	}
	if v < 0 {
		return 0, errors.Errorf("preset %s is negative: %v", label, v)
	}

	zerolog.Ctx(ctx).Debug().Str("label", label).Float64("value", v).Bool("preset", ok).Msg("static numeric answer")
	return v, nil
}

func (s *Static) RequestAcceptOrAbort(ctx context.Context, msg string) error {
	zerolog.Ctx(ctx).Warn().Str("request", msg).Bool("accept", s.Accept).Msg("static confirmation answer")
	if !s.Accept {
		return errors.WithStack(ErrAborted)
	}
	return nil
}
