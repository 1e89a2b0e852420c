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

package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLines []string
		wantEOL   string
	}{
		{
			name:      "lf_terminated",
			input:     "G28\nG1 X0 Y0\n",
			wantLines: []string{"G28", "G1 X0 Y0"},
			wantEOL:   "\n",
		},
		{
			name:      "crlf_terminated",
			input:     "G28\r\nG1 X0 Y0\r\n",
			wantLines: []string{"G28", "G1 X0 Y0"},
			wantEOL:   "\r\n",
		},
		{
			name:      "missing_final_newline",
			input:     "G28\nM84",
			wantLines: []string{"G28", "M84"},
			wantEOL:   "\n",
		},
		{
			name:      "blank_lines_kept",
			input:     "; header\n\n\nG28\n",
			wantLines: []string{"; header", "", "", "G28"},
			wantEOL:   "\n",
		},
		{
			name:      "mixed_crlf_first",
			input:     "; header\r\nG28\nG1 X1\n",
			wantLines: []string{"; header", "G28", "G1 X1"},
			wantEOL:   "\r\n",
		},
		{
			name:      "mixed_lf_first",
			input:     "; header\nG28\r\nG1 X1\r\nM84",
			wantLines: []string{"; header", "G28", "G1 X1", "M84"},
			wantEOL:   "\n",
		},
		{
			name:      "empty",
			input:     "",
			wantLines: []string{},
			wantEOL:   "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse([]byte(tt.input))
			assert.Equal(t, tt.wantLines, doc.Lines())
			assert.Equal(t, tt.wantEOL, doc.EOL())
			assert.Equal(t, tt.input, string(doc.Bytes()), "untouched document must serialize to its input")
		})
	}
}

func TestDocument_ReplaceAndInsert(t *testing.T) {
	doc := Parse([]byte("a\nb\nc\n"))

	require.NoError(t, doc.Replace(1, "; b"))
	require.NoError(t, doc.Insert(2, "inserted"))
	require.NoError(t, doc.Insert(0, "first"))
	require.NoError(t, doc.Insert(doc.Len(), "last"))

	assert.Equal(t, []string{"first", "a", "; b", "inserted", "c", "last"}, doc.Lines())
	assert.Equal(t, "first\na\n; b\ninserted\nc\nlast\n", doc.String())

	assert.ErrorIs(t, doc.Replace(-1, "x"), ErrLineOutOfRange)
	assert.ErrorIs(t, doc.Replace(doc.Len(), "x"), ErrLineOutOfRange)
	assert.ErrorIs(t, doc.Insert(doc.Len()+1, "x"), ErrLineOutOfRange)
}

func TestDocument_AppendTerminatesLastLine(t *testing.T) {
	doc := Parse([]byte("G28\r\nM84"))
	doc.Append("; status one", "; status two")

	assert.Equal(t, "G28\r\nM84\r\n; status one\r\n; status two\r\n", doc.String())
}

func TestDocument_MixedTerminatorsSurviveEdits(t *testing.T) {
	doc := Parse([]byte("; header\nG28\r\nM104 S215\r\nG1 X1\nM84"))

	require.NoError(t, doc.Replace(1, "; G28"))
	require.NoError(t, doc.Insert(3, "TEMPERATURE_WAIT"))
	require.NoError(t, doc.Insert(0, "SET_GCODE_VARIABLE"))
	require.NoError(t, doc.Insert(doc.Len()-1, "before last"))

	assert.Equal(t, "SET_GCODE_VARIABLE\n; header\n; G28\r\nM104 S215\r\nTEMPERATURE_WAIT\nG1 X1\nbefore last\nM84", doc.String(),
		"inserted lines take the terminator of the line they displace, untouched lines keep theirs")

	doc.Append("; status")
	assert.True(t, strings.HasSuffix(doc.String(), "G1 X1\nbefore last\nM84\n; status\n"))
}

func TestStore_SaveLoadWipe(t *testing.T) {
	ctx := zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())
	path := filepath.Join(t.TempDir(), "print.gcode")
	require.NoError(t, os.WriteFile(path, []byte("; header\nG28\n"), 0600))

	store := NewStore(path)
	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())

	doc.Append("; done")
	require.NoError(t, store.Save(ctx, doc))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "; header\nG28\n; done\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "save keeps the original permissions")

	require.NoError(t, store.Wipe(ctx, "; cleared"))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "; cleared\n", string(content))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not be left behind")
}

func TestStore_LoadMissingFile(t *testing.T) {
	ctx := zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())
	store := NewStore(filepath.Join(t.TempDir(), "missing.gcode"))

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading gcode file")
}
