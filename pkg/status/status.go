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

package status

import (
	"fmt"
	"strings"
)

// CommentPrefix starts every status annotation written into a G-code file
const CommentPrefix = "; "

// 📊 Kind classifies what a transform did
type Kind int

const (
	KindChanged  Kind = iota // The transform rewrote or inserted lines
	KindNoOp                 // The expected pattern was absent
	KindDisabled             // The transform was turned off by configuration
	KindWarning              // Something worth the operator's attention, nothing changed
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindChanged:
		return "changed"
	case KindNoOp:
		return "noop"
	case KindDisabled:
		return "disabled"
	case KindWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// 📝 Message is an immutable, single-line annotation describing one transform result
type Message struct {
	transform string
	kind      Kind
	text      string
}

// New creates a message. Line breaks in the text are folded into spaces so every
// message stays a single greppable line.
func New(transform string, kind Kind, format string, args ...any) Message {
	text := fmt.Sprintf(format, args...)
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	return Message{transform: transform, kind: kind, text: text}
}

// Changed creates a KindChanged message
func Changed(transform, format string, args ...any) Message {
	return New(transform, KindChanged, format, args...)
}

// NoOp creates a KindNoOp message
func NoOp(transform, format string, args ...any) Message {
	return New(transform, KindNoOp, format, args...)
}

// Warning creates a KindWarning message
func Warning(transform, format string, args ...any) Message {
	return New(transform, KindWarning, format, args...)
}

// Disabled creates the message recorded for a transform turned off by configuration
func Disabled(transform string) Message {
	return New(transform, KindDisabled, "%s: Disabled", transform)
}

// Transform returns the name of the transform that produced the message
func (m Message) Transform() string { return m.transform }

// Kind returns the message classification
func (m Message) Kind() Kind { return m.kind }

// Text returns the message body without the comment prefix
func (m Message) Text() string { return m.text }

// Comment renders the message as a G-code comment line
func (m Message) Comment() string {
	return CommentPrefix + m.text
}

// String implements fmt.Stringer
func (m Message) String() string {
	return m.Comment()
}

// 📚 Collector accumulates messages in execution order. It is append-only.
type Collector struct {
	messages []Message
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends messages in the order given
func (c *Collector) Add(msgs ...Message) {
	c.messages = append(c.messages, msgs...)
}

// Len returns the number of collected messages
func (c *Collector) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the collected messages
func (c *Collector) Messages() []Message {
	cp := make([]Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// Comments renders every collected message as a comment line
func (c *Collector) Comments() []string {
	out := make([]string, 0, len(c.messages))
	for _, m := range c.messages {
		out = append(out, m.Comment())
	}
	return out
}
