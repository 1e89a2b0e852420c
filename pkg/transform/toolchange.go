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

	"github.com/walteh/gcodepost/pkg/config"
	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/gcode"
	"github.com/walteh/gcodepost/pkg/status"
)

const (
	toolchangeWaitName = "Toolchange M104 replacement"

	ToolchangeStartMarker = "; CP TOOLCHANGE START"
	ToolchangeEndMarker   = "; CP TOOLCHANGE END"
)

var _ Transform = (*ToolchangeWait)(nil)

// 🌡️ ToolchangeWait makes the printer wait for the nozzle to reach temperature after the
// last heater command of every toolchange block
type ToolchangeWait struct {
	minTemp   float64
	tolerance float64
}

func NewToolchangeWait(cfg config.ToolchangeConfig) *ToolchangeWait {
	return &ToolchangeWait{minTemp: cfg.MinWaitTemp, tolerance: cfg.WaitTolerance}
}

func (t *ToolchangeWait) Name() string { return toolchangeWaitName }

// WaitLine builds the wait inserted after heaterLine, which sets target spelled as raw
func (t *ToolchangeWait) WaitLine(heaterLine string, target float64, raw string) string {
	return fmt.Sprintf("%sTEMPERATURE_WAIT SENSOR=extruder MINIMUM=%s MAXIMUM=%s ;M104 S%s wait inserted.",
		gcode.LeadingWhitespace(heaterLine), formatCompact(target-t.tolerance), formatCompact(target+t.tolerance), raw)
}

func (t *ToolchangeWait) Apply(ctx context.Context, doc *document.Document) ([]status.Message, error) {
	logger := zerolog.Ctx(ctx)
	blocks, inserted, low := 0, 0, 0

	for i := 0; i < doc.Len(); i++ {
		if !strings.HasPrefix(strings.TrimLeft(doc.Line(i), " \t"), ToolchangeStartMarker) {
			continue
		}
		blocks++

		end := i + 1
		for end < doc.Len() && !strings.HasPrefix(strings.TrimLeft(doc.Line(end), " \t"), ToolchangeEndMarker) {
			end++
		}

		heater, target, raw := lastHeaterAfterTool(doc, i+1, end)
		switch {
		case heater < 0:
			logger.Debug().Int("block_start", i+1).Msg("toolchange block without heater command")
		case target >= t.minTemp:
			if err := doc.Insert(heater+1, t.WaitLine(doc.Line(heater), target, raw)); err != nil {
				return nil, errors.Errorf("inserting wait after line %d: %w", heater+1, err)
			}
			inserted++
			end++
		default:
			logger.Debug().Int("line", heater+1).Float64("target", target).Msg("heater target below wait threshold")
			low++
		}

		i = end
	}

	msgs := []status.Message{status.New(toolchangeWaitName, kindFor(inserted),
		"%d toolchanges detected and %d wait commands inserted after M104 commands", blocks, inserted)}
	if low > 0 {
		msgs = append(msgs, status.Warning(toolchangeWaitName,
			"Warning: %d M104 commands below %s found in toolchange blocks; no wait added", low, formatCompact(t.minTemp)))
	}
	return msgs, nil
}

// lastHeaterAfterTool finds, within [from, to), the last heater command that follows the
// last tool selection. It returns -1 when either is missing.
func lastHeaterAfterTool(doc *document.Document, from, to int) (int, float64, string) {
	lastTool := -1
	for i := from; i < to; i++ {
		if gcode.IsComment(doc.Line(i)) {
			continue
		}
		if _, ok := gcode.ToolSelect(doc.Line(i)); ok {
			lastTool = i
		}
	}
	if lastTool < 0 {
		return -1, 0, ""
	}

	heater, target, raw := -1, 0.0, ""
	for i := lastTool + 1; i < to; i++ {
		if gcode.IsComment(doc.Line(i)) {
			continue
		}
		if v, s, ok := gcode.HeaterTarget(doc.Line(i)); ok {
			heater, target, raw = i, v, s
		}
	}
	return heater, target, raw
}

func kindFor(changes int) status.Kind {
	if changes > 0 {
		return status.KindChanged
	}
	return status.KindNoOp
}
