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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gcodepost/pkg/config"
	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/status"
	"github.com/walteh/gcodepost/pkg/transform"
)

const (
	tcStart = "; CP TOOLCHANGE START"
	tcEnd   = "; CP TOOLCHANGE END"
)

func TestToolchangeWait(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantLines []string
		wantMsgs  []string
	}{
		{
			name:  "wait_inserted_after_heater",
			lines: []string{tcStart, "T1", "M104 S215", "G1 X1", tcEnd},
			wantLines: []string{
				tcStart, "T1", "M104 S215",
				"TEMPERATURE_WAIT SENSOR=extruder MINIMUM=213 MAXIMUM=217 ;M104 S215 wait inserted.",
				"G1 X1", tcEnd,
			},
			wantMsgs: []string{"1 toolchanges detected and 1 wait commands inserted after M104 commands"},
		},
		{
			name:  "indentation_and_fraction_kept",
			lines: []string{tcStart, "  T2", "  M104 S220.5 ; heat", tcEnd},
			wantLines: []string{
				tcStart, "  T2", "  M104 S220.5 ; heat",
				"  TEMPERATURE_WAIT SENSOR=extruder MINIMUM=218.5 MAXIMUM=222.5 ;M104 S220.5 wait inserted.",
				tcEnd,
			},
			wantMsgs: []string{"1 toolchanges detected and 1 wait commands inserted after M104 commands"},
		},
		{
			name:  "last_heater_after_last_tool",
			lines: []string{tcStart, "T0", "M104 S250", "T1", "M104 S180", "M104 S230", "G1 Y2", tcEnd},
			wantLines: []string{
				tcStart, "T0", "M104 S250", "T1", "M104 S180", "M104 S230",
				"TEMPERATURE_WAIT SENSOR=extruder MINIMUM=228 MAXIMUM=232 ;M104 S230 wait inserted.",
				"G1 Y2", tcEnd,
			},
			wantMsgs: []string{"1 toolchanges detected and 1 wait commands inserted after M104 commands"},
		},
		{
			name:      "below_threshold_warns",
			lines:     []string{tcStart, "T1", "M104 S190", tcEnd},
			wantLines: []string{tcStart, "T1", "M104 S190", tcEnd},
			wantMsgs: []string{
				"1 toolchanges detected and 0 wait commands inserted after M104 commands",
				"Warning: 1 M104 commands below 200 found in toolchange blocks; no wait added",
			},
		},
		{
			name:      "threshold_is_inclusive",
			lines:     []string{tcStart, "T1", "M104 S200", tcEnd},
			wantLines: []string{tcStart, "T1", "M104 S200", "TEMPERATURE_WAIT SENSOR=extruder MINIMUM=198 MAXIMUM=202 ;M104 S200 wait inserted.", tcEnd},
			wantMsgs:  []string{"1 toolchanges detected and 1 wait commands inserted after M104 commands"},
		},
		{
			name:      "blocks_without_qualifying_heater_skipped",
			lines:     []string{tcStart, "M104 S215", "T1", "G1 X0", tcEnd, tcStart, "; T2", "M104 S215", tcEnd},
			wantLines: []string{tcStart, "M104 S215", "T1", "G1 X0", tcEnd, tcStart, "; T2", "M104 S215", tcEnd},
			wantMsgs:  []string{"2 toolchanges detected and 0 wait commands inserted after M104 commands"},
		},
		{
			name:  "every_block_sees_shifted_positions",
			lines: []string{tcStart, "T1", "M104 S215", tcEnd, "G1 X5", tcStart, "T2", "M104 S240", tcEnd},
			wantLines: []string{
				tcStart, "T1", "M104 S215",
				"TEMPERATURE_WAIT SENSOR=extruder MINIMUM=213 MAXIMUM=217 ;M104 S215 wait inserted.",
				tcEnd, "G1 X5",
				tcStart, "T2", "M104 S240",
				"TEMPERATURE_WAIT SENSOR=extruder MINIMUM=238 MAXIMUM=242 ;M104 S240 wait inserted.",
				tcEnd,
			},
			wantMsgs: []string{"2 toolchanges detected and 2 wait commands inserted after M104 commands"},
		},
		{
			name:  "unterminated_block_runs_to_end",
			lines: []string{tcStart, "T3", "M104 S260"},
			wantLines: []string{
				tcStart, "T3", "M104 S260",
				"TEMPERATURE_WAIT SENSOR=extruder MINIMUM=258 MAXIMUM=262 ;M104 S260 wait inserted.",
			},
			wantMsgs: []string{"1 toolchanges detected and 1 wait commands inserted after M104 commands"},
		},
		{
			name:      "no_blocks",
			lines:     []string{"T1", "M104 S215"},
			wantLines: []string{"T1", "M104 S215"},
			wantMsgs:  []string{"0 toolchanges detected and 0 wait commands inserted after M104 commands"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New(tt.lines...)
			msgs, err := transform.NewToolchangeWait(config.Default().Toolchange).Apply(testContext(t), doc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsgs, texts(msgs))
			assert.Equal(t, tt.wantLines, doc.Lines())
		})
	}
}

func TestToolchangeWaitKinds(t *testing.T) {
	doc := document.New(tcStart, "T1", "M104 S150", tcEnd)
	msgs, err := transform.NewToolchangeWait(config.Default().Toolchange).Apply(testContext(t), doc)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, status.KindNoOp, msgs[0].Kind())
	assert.Equal(t, status.KindWarning, msgs[1].Kind())
}

func TestToolchangeWaitConfigurableThreshold(t *testing.T) {
	doc := document.New(tcStart, "T1", "M104 S190", tcEnd)
	tw := transform.NewToolchangeWait(config.ToolchangeConfig{MinWaitTemp: 180, WaitTolerance: 5})

	msgs, err := tw.Apply(testContext(t), doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 toolchanges detected and 1 wait commands inserted after M104 commands"}, texts(msgs))
	assert.Equal(t, "TEMPERATURE_WAIT SENSOR=extruder MINIMUM=185 MAXIMUM=195 ;M104 S190 wait inserted.", doc.Line(3))
}
