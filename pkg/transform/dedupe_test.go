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

package transform_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gcodepost/pkg/config"
	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/status"
	"github.com/walteh/gcodepost/pkg/transform"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())
}

func texts(msgs []status.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text())
	}
	return out
}

func TestDuplicateTool(t *testing.T) {
	tests := []struct {
		name      string
		tools     *config.ToolsConfig
		lines     []string
		wantLines []string
		wantMsg   string
		wantKind  status.Kind
	}{
		{
			name:      "second_occurrence_removed",
			lines:     []string{"; header", "T1", "G28", "T1", ";LAYER_CHANGE", "T1"},
			wantLines: []string{"; header", "T1", "G28", "; REMOVED DUPLICATE TOOL: T1", ";LAYER_CHANGE", "T1"},
			wantMsg:   "Tool selection removal: Successfully commented out duplicate T1 command at line 4 (before first layer)",
			wantKind:  status.KindChanged,
		},
		{
			name:      "special_tool_both_removed",
			lines:     []string{"T4", "M104 S200", "T4 ; again", ";LAYER_CHANGE"},
			wantLines: []string{"; REMOVED T4 (FIRST OCCURRENCE): T4", "M104 S200", "; REMOVED T4 (SECOND OCCURRENCE): T4 ; again", ";LAYER_CHANGE"},
			wantMsg:   "Tool selection removal: T4 detected - removed BOTH occurrences at lines 1 and 3",
			wantKind:  status.KindChanged,
		},
		{
			name:      "special_tool_single_occurrence",
			lines:     []string{"G28", "T4  ", ";LAYER_CHANGE", "T4"},
			wantLines: []string{"G28", "; REMOVED T4 (FIRST OCCURRENCE): T4", ";LAYER_CHANGE", "T4"},
			wantMsg:   "Tool selection removal: T4 detected - removed first occurrence at line 2, no second occurrence found before first layer",
			wantKind:  status.KindChanged,
		},
		{
			name:      "no_duplicate",
			lines:     []string{"G28", "T2", "G1 X1", ";LAYER_CHANGE", "T2"},
			wantLines: []string{"G28", "T2", "G1 X1", ";LAYER_CHANGE", "T2"},
			wantMsg:   "Tool selection removal: No duplicate T2 found before first layer. Initial T2 found at line 2",
			wantKind:  status.KindNoOp,
		},
		{
			name:      "no_initial_tool",
			lines:     []string{"; T1 in a comment", "G28"},
			wantLines: []string{"; T1 in a comment", "G28"},
			wantMsg:   "Tool selection removal: No initial tool selection (T0-T5) found in G-code",
			wantKind:  status.KindNoOp,
		},
		{
			name:      "tool_after_first_layer_ignored",
			lines:     []string{";LAYER_CHANGE", "T1", "T1"},
			wantLines: []string{";LAYER_CHANGE", "T1", "T1"},
			wantMsg:   "Tool selection removal: No initial tool selection (T0-T5) found in G-code",
			wantKind:  status.KindNoOp,
		},
		{
			name:      "tool_above_max_ignored",
			lines:     []string{"T7", "T7"},
			wantLines: []string{"T7", "T7"},
			wantMsg:   "Tool selection removal: No initial tool selection (T0-T5) found in G-code",
			wantKind:  status.KindNoOp,
		},
		{
			name:      "different_tool_is_not_a_duplicate",
			lines:     []string{"T1", "T10", "T2", "T1"},
			wantLines: []string{"T1", "T10", "T2", "; REMOVED DUPLICATE TOOL: T1"},
			wantMsg:   "Tool selection removal: Successfully commented out duplicate T1 command at line 4 (before first layer)",
			wantKind:  status.KindChanged,
		},
		{
			name:      "policy_table_drives_double_removal",
			tools:     &config.ToolsConfig{MaxToolID: 5, RemoveInitial: []string{"T2"}},
			lines:     []string{"T2", "T2"},
			wantLines: []string{"; REMOVED T2 (FIRST OCCURRENCE): T2", "; REMOVED T2 (SECOND OCCURRENCE): T2"},
			wantMsg:   "Tool selection removal: T2 detected - removed BOTH occurrences at lines 1 and 2",
			wantKind:  status.KindChanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := config.Default().Tools
			if tt.tools != nil {
				tools = *tt.tools
			}

			doc := document.New(tt.lines...)
			msgs, err := transform.NewDuplicateTool(tools).Apply(testContext(t), doc)
			require.NoError(t, err)

			require.Len(t, msgs, 1)
			assert.Equal(t, tt.wantMsg, msgs[0].Text())
			assert.Equal(t, tt.wantKind, msgs[0].Kind())
			assert.Equal(t, tt.wantLines, doc.Lines())
		})
	}
}

func TestDuplicateToolPolicy(t *testing.T) {
	dt := transform.NewDuplicateTool(config.Default().Tools)
	assert.True(t, dt.Policy(4).RemoveInitial)
	assert.False(t, dt.Policy(1).RemoveInitial)
}
