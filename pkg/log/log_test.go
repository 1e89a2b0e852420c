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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gcodepost/pkg/status"
)

func TestConsole(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx := zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())

	tests := []struct {
		name     string
		op       func(t *testing.T, c *Console)
		wantLogs []string
	}{
		{
			name: "report_changed",
			op: func(t *testing.T, c *Console) {
				c.Report(ctx, status.Changed("Tool selection removal", "Tool selection removal: Successfully commented out duplicate T1 command at line 4 (before first layer)"))
			},
			wantLogs: []string{
				"✓ Tool selection removal         changed    Successfully commented out duplicate T1 command at line 4 (before first layer)",
			},
		},
		{
			name: "report_without_name_prefix",
			op: func(t *testing.T, c *Console) {
				c.Report(ctx, status.Warning("Toolchange M104 replacement", "Warning: 1 M104 commands below 200 found in toolchange blocks; no wait added"))
			},
			wantLogs: []string{
				"! Toolchange M104 replacement    warning    Warning: 1 M104 commands below 200 found in toolchange blocks; no wait added",
			},
		},
		{
			name: "report_disabled",
			op: func(t *testing.T, c *Console) {
				c.Report(ctx, status.Disabled("Brim detection"))
			},
			wantLogs: []string{
				"• Brim detection                 disabled   Disabled",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, c *Console) {
				c.Warning(ctx, "warning message")
				c.Error(ctx, "error message")
				c.Success(ctx, "success message")
			},
			wantLogs: []string{
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, c *Console) {
				c.Warningf(ctx, "warning %s", "test")
				c.Successf(ctx, "success %s", "test")
			},
			wantLogs: []string{
				"⚠️  warning test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, c *Console) {
				c.Header(ctx, "/tmp/part.gcode")
			},
			wantLogs: []string{
				"gcodepost • /tmp/part.gcode",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, c *Console) {
				c.Success(ctx, "first")
				c.LogNewline()
				c.Success(ctx, "second")
			},
			wantLogs: []string{
				"✅ first",
				"",
				"✅ second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			c := New(buf)

			// Perform operation
			tt.op(t, c)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestConsoleResults(t *testing.T) {
	c := New(io.Discard)
	ctx := context.Background()

	c.Report(ctx, status.NoOp("Spiral", "Spiral: nothing"))
	c.Report(ctx, status.Disabled("Brim detection"))

	got := c.Results()
	require.Len(t, got, 2)
	assert.Equal(t, "Spiral: nothing", got[0].Text())
	assert.Equal(t, status.KindDisabled, got[1].Kind())
}

func TestConsoleContext(t *testing.T) {
	// Create console
	c := New(io.Discard)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, c)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, c, got, "console from context should be the same instance")

	// Check panic on missing console
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when console is missing")
}
