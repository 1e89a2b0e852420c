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
	"bytes"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	lf   = "\n"
	crlf = "\r\n"
)

// ErrLineOutOfRange is returned when an index does not address a line of the document.
var ErrLineOutOfRange = errors.Base("line index out of range")

// 📄 Document is an ordered, mutable sequence of G-code lines.
//
// Lines are stored without their terminator. Each line remembers its own terminator
// (LF, CRLF, or none for an unterminated last line) so that an untouched document
// serializes back to the exact bytes it was parsed from, even when styles are mixed.
type Document struct {
	lines []string
	eols  []string
}

// 🏭 Parse splits raw file content into a Document
func Parse(data []byte) *Document {
	doc := &Document{}
	text := string(data)

	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			doc.lines = append(doc.lines, text)
			doc.eols = append(doc.eols, "")
			break
		}

		line, eol := text[:i], lf
		if strings.HasSuffix(line, "\r") {
			line, eol = line[:len(line)-1], crlf
		}
		doc.lines = append(doc.lines, line)
		doc.eols = append(doc.eols, eol)
		text = text[i+1:]
	}
	return doc
}

// New builds a Document from already split lines, all terminated with LF.
func New(lines ...string) *Document {
	doc := &Document{lines: make([]string, len(lines)), eols: make([]string, len(lines))}
	copy(doc.lines, lines)
	for i := range doc.eols {
		doc.eols[i] = lf
	}
	return doc
}

// Len returns the number of lines
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the content of line i without its terminator
func (d *Document) Line(i int) string {
	return d.lines[i]
}

// Lines returns a copy of all lines
func (d *Document) Lines() []string {
	cp := make([]string, len(d.lines))
	copy(cp, d.lines)
	return cp
}

// EOL returns the terminator of the first terminated line, LF when there is none
func (d *Document) EOL() string {
	for _, eol := range d.eols {
		if eol != "" {
			return eol
		}
	}
	return lf
}

// terminatorNear picks the terminator for a line placed at index i from its neighbours
func (d *Document) terminatorNear(i int) string {
	if i >= 0 && i < len(d.eols) && d.eols[i] != "" {
		return d.eols[i]
	}
	if i-1 >= 0 && i-1 < len(d.eols) && d.eols[i-1] != "" {
		return d.eols[i-1]
	}
	return d.EOL()
}

// 🔄 Replace overwrites the content of line i, keeping its position and terminator
func (d *Document) Replace(i int, content string) error {
	if i < 0 || i >= len(d.lines) {
		return errors.Errorf("replacing line %d of %d: %w", i, len(d.lines), ErrLineOutOfRange)
	}
	d.lines[i] = content
	return nil
}

// ➕ Insert places a new line at index i, shifting line i and every later line down by one.
// The new line takes the terminator of the line it displaces. Inserting at Len() appends.
func (d *Document) Insert(i int, content string) error {
	if i < 0 || i > len(d.lines) {
		return errors.Errorf("inserting at line %d of %d: %w", i, len(d.lines), ErrLineOutOfRange)
	}
	if i == len(d.lines) {
		d.Append(content)
		return nil
	}
	eol := d.terminatorNear(i)

	d.lines = append(d.lines, "")
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = content

	d.eols = append(d.eols, "")
	copy(d.eols[i+1:], d.eols[i:])
	d.eols[i] = eol
	return nil
}

// Append adds lines at the end of the document. An unterminated last line is
// terminated first, and every appended line is terminated like the last line.
func (d *Document) Append(content ...string) {
	if len(content) == 0 {
		return
	}
	last := len(d.lines) - 1
	eol := d.terminatorNear(last)
	if last >= 0 {
		d.eols[last] = eol
	}
	for _, line := range content {
		d.lines = append(d.lines, line)
		d.eols = append(d.eols, eol)
	}
}

// Bytes serializes the document back to text
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for i, line := range d.lines {
		buf.WriteString(line)
		buf.WriteString(d.eols[i])
	}
	return buf.Bytes()
}

// String implements fmt.Stringer
func (d *Document) String() string {
	return string(d.Bytes())
}
