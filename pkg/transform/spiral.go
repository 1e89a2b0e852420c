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

package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/status"
)

const (
	spiralName = "Filament swap spiral removal"

	// FilamentStartMarker ends the region in which the spiral artifact can appear
	FilamentStartMarker = "; filament start gcode"
)

// SpiralSequence is the lift, travel and lower emitted by the filament swap, in order
var SpiralSequence = [3]string{
	"G2 Z0.4 I0.86 J0.86 P1 F10000 ; spiral lift a little from second lift",
	"G1 X0 Y245 F30000",
	"G1 Z0 F600",
}

var _ Transform = (*Spiral)(nil)

// 🌀 Spiral comments out the erroneous filament swap spiral. Other lines may sit between
// the three parts of the sequence.
type Spiral struct{}

func NewSpiral() *Spiral { return &Spiral{} }

func (s *Spiral) Name() string { return spiralName }

func (s *Spiral) Apply(ctx context.Context, doc *document.Document) ([]status.Message, error) {
	var pos [3]int
	found := 0
	reason := "filament swap spiral sequence not found in expected format"

	for i := 0; i < doc.Len() && found < len(SpiralSequence); i++ {
		line := doc.Line(i)
		if strings.TrimSpace(line) == FilamentStartMarker {
			reason = fmt.Sprintf("hit '%s' before finding complete sequence", FilamentStartMarker)
			break
		}
		if line == SpiralSequence[found] {
			pos[found] = i
			found++
		}
	}

	if found < len(SpiralSequence) {
		zerolog.Ctx(ctx).Debug().Int("parts_found", found).Str("reason", reason).Msg("spiral not removed")
		return []status.Message{status.NoOp(spiralName,
			"%s: %s. Searched for 'G2 Z0.4...' → 'G1 X0 Y245...' → 'G1 Z0 F600...'", spiralName, reason)}, nil
	}

	for part, i := range pos {
		label := fmt.Sprintf("REMOVED FILAMENT SWAP SPIRAL (PART %d/%d)", part+1, len(pos))
		if err := doc.Replace(i, commentOut(label, doc.Line(i))); err != nil {
			return nil, errors.Errorf("commenting out spiral part %d: %w", part+1, err)
		}
	}

	return []status.Message{status.Changed(spiralName,
		"%s: Successfully commented out erroneous spiral lift-move-lower commands at original lines %d, %d, and %d",
		spiralName, pos[0]+1, pos[1]+1, pos[2]+1)}, nil
}
