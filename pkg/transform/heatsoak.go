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
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/gcode"
	"github.com/walteh/gcodepost/pkg/status"
)

const (
	// HeatSoakName labels every heat soak message
	HeatSoakName = "Heat soak configuration"

	startPrintMacro = "START_PRINT"
)

var reSoakTime = regexp.MustCompile(`SOAK_TIME=\S+`)

var _ Transform = (*HeatSoak)(nil)

// 🔥 HeatSoak passes the chosen soak duration to the START_PRINT macro
type HeatSoak struct {
	minutes float64
}

// NewHeatSoak creates the transform for a soak of minutes; zero means no soak
func NewHeatSoak(minutes float64) *HeatSoak {
	return &HeatSoak{minutes: minutes}
}

func (h *HeatSoak) Name() string { return HeatSoakName }

// Rewrite sets SOAK_TIME on one START_PRINT line, keeping any trailing comment
func (h *HeatSoak) Rewrite(line string) string {
	code, comment := line, ""
	if i := strings.IndexByte(line, ';'); i >= 0 {
		code, comment = line[:i], line[i:]
	}

	trimmed := strings.TrimRight(code, " \t")
	gap := code[len(trimmed):]
	soak := "SOAK_TIME=" + h.value()

	if reSoakTime.MatchString(trimmed) {
		trimmed = reSoakTime.ReplaceAllLiteralString(trimmed, soak)
	} else {
		trimmed += " " + soak
	}

	return trimmed + gap + comment
}

func (h *HeatSoak) Apply(ctx context.Context, doc *document.Document) ([]status.Message, error) {
	rewritten := 0
	for i := 0; i < doc.Len(); i++ {
		line := doc.Line(i)
		if gcode.IsComment(line) || gcode.FirstToken(line) != startPrintMacro {
			continue
		}
		if err := doc.Replace(i, h.Rewrite(line)); err != nil {
			return nil, errors.Errorf("setting soak time at line %d: %w", i+1, err)
		}
		rewritten++
	}

	zerolog.Ctx(ctx).Debug().Float64("minutes", h.minutes).Int("lines", rewritten).Msg("heat soak applied")

	if rewritten == 0 {
		return []status.Message{status.NoOp(HeatSoakName, "Heat soak: No START_PRINT command found, SOAK_TIME not set")}, nil
	}
	return []status.Message{status.Changed(HeatSoakName,
		"Heat soak: Set to %s minutes in START_PRINT command", h.value())}, nil
}

// value spells the soak for the macro: "0" for no soak, otherwise a decimal such as "5.0"
func (h *HeatSoak) value() string {
	if h.minutes == 0 {
		return "0"
	}
	return formatDecimal(h.minutes)
}
