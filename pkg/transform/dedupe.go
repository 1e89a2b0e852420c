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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gcodepost/pkg/config"
	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/gcode"
	"github.com/walteh/gcodepost/pkg/status"
)

const duplicateToolName = "Tool selection removal"

// ToolPolicy says how the start sequence of one tool is cleaned up
type ToolPolicy struct {
	// RemoveInitial neutralizes the initial selection as well as its duplicate
	RemoveInitial bool
}

var _ Transform = (*DuplicateTool)(nil)

// 🔧 DuplicateTool neutralizes the repeated tool selection a slicer emits before the first layer
type DuplicateTool struct {
	maxToolID int
	policies  map[int]ToolPolicy
}

// NewDuplicateTool builds the policy table from cfg. Tool names were checked by Validate.
func NewDuplicateTool(cfg config.ToolsConfig) *DuplicateTool {
	policies := make(map[int]ToolPolicy, len(cfg.RemoveInitial))
	for _, name := range cfg.RemoveInitial {
		if id, err := config.ParseToolName(name); err == nil {
			policies[id] = ToolPolicy{RemoveInitial: true}
		}
	}
	return &DuplicateTool{maxToolID: cfg.MaxToolID, policies: policies}
}

// Policy returns the policy applied to tool id
func (t *DuplicateTool) Policy(id int) ToolPolicy {
	return t.policies[id]
}

func (t *DuplicateTool) Name() string { return duplicateToolName }

func (t *DuplicateTool) Apply(ctx context.Context, doc *document.Document) ([]status.Message, error) {
	first, id := t.findInitial(doc)
	if first < 0 {
		return []status.Message{status.NoOp(duplicateToolName,
			"%s: No initial tool selection (T0-T%d) found in G-code", duplicateToolName, t.maxToolID)}, nil
	}

	tool := fmt.Sprintf("T%d", id)
	second := findRepeat(doc, first+1, id)
	policy := t.Policy(id)

	zerolog.Ctx(ctx).Debug().Str("tool", tool).Int("initial", first+1).Int("duplicate", second+1).
		Bool("remove_initial", policy.RemoveInitial).Msg("tool selection scan")

	if policy.RemoveInitial {
		if err := doc.Replace(first, commentOut("REMOVED "+tool+" (FIRST OCCURRENCE)", doc.Line(first))); err != nil {
			return nil, errors.Errorf("commenting out %s: %w", tool, err)
		}
		if second < 0 {
			return []status.Message{status.Changed(duplicateToolName,
				"%s: %s detected - removed first occurrence at line %d, no second occurrence found before first layer",
				duplicateToolName, tool, first+1)}, nil
		}
		if err := doc.Replace(second, commentOut("REMOVED "+tool+" (SECOND OCCURRENCE)", doc.Line(second))); err != nil {
			return nil, errors.Errorf("commenting out %s: %w", tool, err)
		}
		return []status.Message{status.Changed(duplicateToolName,
			"%s: %s detected - removed BOTH occurrences at lines %d and %d",
			duplicateToolName, tool, first+1, second+1)}, nil
	}

	if second < 0 {
		return []status.Message{status.NoOp(duplicateToolName,
			"%s: No duplicate %s found before first layer. Initial %s found at line %d",
			duplicateToolName, tool, tool, first+1)}, nil
	}

	if err := doc.Replace(second, commentOut("REMOVED DUPLICATE TOOL", doc.Line(second))); err != nil {
		return nil, errors.Errorf("commenting out %s: %w", tool, err)
	}
	return []status.Message{status.Changed(duplicateToolName,
		"%s: Successfully commented out duplicate %s command at line %d (before first layer)",
		duplicateToolName, tool, second+1)}, nil
}

// findInitial returns the index and id of the first tool selection before the first layer
func (t *DuplicateTool) findInitial(doc *document.Document) (int, int) {
	for i := 0; i < doc.Len(); i++ {
		line := doc.Line(i)
		if gcode.IsLayerChange(line) {
			return -1, 0
		}
		if id, ok := gcode.ToolSelect(line); ok && id <= t.maxToolID {
			return i, id
		}
	}
	return -1, 0
}

// findRepeat returns the index of the next selection of id, stopping at the first layer
func findRepeat(doc *document.Document, from, id int) int {
	for i := from; i < doc.Len(); i++ {
		line := doc.Line(i)
		if gcode.IsLayerChange(line) {
			return -1
		}
		if got, ok := gcode.ToolSelect(line); ok && got == id {
			return i
		}
	}
	return -1
}
