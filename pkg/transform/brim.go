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
	"github.com/walteh/gcodepost/pkg/geometry"
	"github.com/walteh/gcodepost/pkg/prompt"
	"github.com/walteh/gcodepost/pkg/status"
)

const (
	brimName = "Brim detection"

	brimSection    = "Brim"
	brimGapKey     = "brim_object_gap"
	brimVariable   = "SET_GCODE_VARIABLE MACRO=_KAMP_Settings VARIABLE=detected_brim_width VALUE="
	brimNoOpText   = "Brim detection: No brim section found, no EXCLUDE_OBJECT bounds found, or unable to calculate brim width"
	brimWarnFormat = "Warning: Detected brim margin is %.2fmm"
)

// ErrBrimRejected is returned when the operator refuses an unusually large brim clearance
var ErrBrimRejected = errors.Base("Brim width warning aborted: Large brim margin detected and user chose to abort processing")

// 📐 BrimMeasurement is everything inferred about the brim of one print
type BrimMeasurement struct {
	Object    geometry.Bounds
	Brim      geometry.Bounds // outer edge, line width included
	Gap       float64
	LineWidth float64
	Points    int
	Clearance float64
}

// Method describes how the clearance was derived
func (m BrimMeasurement) Method() string {
	return fmt.Sprintf("EXCLUDE_OBJECT bounds vs true brim edges (total clearance needed:%.2fmm, gap:%smm + brim_width ≈ %.2fmm, line_width:%smm)",
		m.Clearance, formatDecimal(m.Gap), m.Clearance-m.Gap, formatDecimal(m.LineWidth))
}

var _ Transform = (*Brim)(nil)

// 🧱 Brim infers the clearance between the object and the outer edge of its brim and
// passes it to the adaptive purge macro
type Brim struct {
	cfg     config.BrimConfig
	confirm prompt.Confirmer
}

func NewBrim(cfg config.BrimConfig, confirm prompt.Confirmer) *Brim {
	return &Brim{cfg: cfg, confirm: confirm}
}

func (b *Brim) Name() string { return brimName }

func (b *Brim) Apply(ctx context.Context, doc *document.Document) ([]status.Message, error) {
	logger := zerolog.Ctx(ctx)

	m, ok := b.Measure(doc)
	if !ok || m.Clearance <= 0 {
		logger.Debug().Bool("measured", ok).Msg("no brim clearance")
		return []status.Message{status.NoOp(brimName, brimNoOpText)}, nil
	}

	logger.Debug().Float64("clearance", m.Clearance).Int("points", m.Points).Float64("gap", m.Gap).Msg("brim measured")

	if m.Clearance > b.cfg.WarningThreshold {
		err := b.confirm.RequestAcceptOrAbort(ctx, fmt.Sprintf(brimWarnFormat, m.Clearance))
		if errors.Is(err, prompt.ErrAborted) {
			return nil, errors.WithStack(ErrBrimRejected)
		}
		if err != nil {
			return nil, errors.Errorf("confirming brim clearance: %w", err)
		}
	}

	at := firstCommand(doc)
	value := max(round2(m.Clearance), b.cfg.MinClearance)

	if err := doc.Insert(at, brimVariable+formatDecimal(value)); err != nil {
		return nil, errors.Errorf("injecting brim width: %w", err)
	}

	return []status.Message{status.Changed(brimName,
		"Brim detection: Found brim width %smm using %s, injected SET_GCODE_VARIABLE command at line %d",
		formatDecimal(value), m.Method(), at+1)}, nil
}

// 📏 Measure computes the clearance without touching doc. ok is false when the object
// bounds, the brim section, its line width, or enough exterior points are missing.
func (b *Brim) Measure(doc *document.Document) (BrimMeasurement, bool) {
	object, ok := objectBounds(doc)
	if !ok {
		return BrimMeasurement{}, false
	}

	start, end, width, ok := brimRange(doc)
	if !ok {
		return BrimMeasurement{}, false
	}

	var points []geometry.Point
	for i := start; i < end; i++ {
		p, ok := gcode.MoveXY(doc.Line(i))
		if ok && object.Outside(p, b.cfg.Tolerance) {
			points = append(points, p)
		}
	}
	if len(points) < b.cfg.MinPoints {
		return BrimMeasurement{}, false
	}

	centerline, _ := geometry.BoundsOf(points)
	edge := centerline.Expand(width / 2)

	return BrimMeasurement{
		Object:    object,
		Brim:      edge,
		Gap:       b.brimGap(doc),
		LineWidth: width,
		Points:    len(points),
		Clearance: object.ClearanceTo(edge).Max(),
	}, true
}

// objectBounds uses the first boundary definition that carries a parsable polygon
func objectBounds(doc *document.Document) (geometry.Bounds, bool) {
	for i := 0; i < doc.Len(); i++ {
		poly, ok := gcode.Polygon(doc.Line(i))
		if !ok {
			continue
		}
		if bounds, ok := geometry.BoundsOf(poly); ok {
			return bounds, true
		}
	}
	return geometry.Bounds{}, false
}

// brimGap reads the slicer setting from the trailing settings block, zero when absent
func (b *Brim) brimGap(doc *document.Document) float64 {
	for i := max(0, doc.Len()-b.cfg.GapSearchLines); i < doc.Len(); i++ {
		if v, ok := gcode.SettingFloat(strings.TrimSpace(doc.Line(i)), brimGapKey); ok {
			return v
		}
	}
	return 0
}

// brimRange locates the brim section as [start, end) and the last line width declared in it
func brimRange(doc *document.Document) (int, int, float64, bool) {
	start, end := -1, doc.Len()
	width, hasWidth := 0.0, false

	for i := 0; i < doc.Len(); i++ {
		line := doc.Line(i)
		if typ, ok := gcode.SectionType(line); ok {
			if typ == brimSection {
				start = i
				continue
			}
			if start >= 0 {
				end = i
				break
			}
			continue
		}
		if start < 0 {
			continue
		}
		if w, ok := gcode.Width(line); ok {
			width, hasWidth = w, true
		}
	}

	if start < 0 || !hasWidth {
		return 0, 0, 0, false
	}
	return start, end, width, true
}

// firstCommand is the index of the first line that is neither blank nor a comment
func firstCommand(doc *document.Document) int {
	for i := 0; i < doc.Len(); i++ {
		line := doc.Line(i)
		if gcode.IsBlank(line) || gcode.IsComment(line) {
			continue
		}
		return i
	}
	return 0
}
