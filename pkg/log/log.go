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
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/gcodepost/pkg/status"
)

// 🎨 Display configuration
const (
	resultIndent = 4  // spaces to indent result entries
	nameWidth    = 30 // Width for the transform name
	kindWidth    = 10 // Width for the result kind
)

// 🎯 Console prints transform results for the operator and mirrors them to zerolog
type Console struct {
	console io.Writer
	mu      sync.Mutex
	results []status.Message
}

// 🏭 New creates a new console
func New(console io.Writer) *Console {
	return &Console{
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the console from context
func FromContext(ctx context.Context) *Console {
	c, ok := ctx.Value(contextKey{}).(*Console)
	if !ok {
		panic("console not found in context")
	}
	return c
}

// 🎯 NewContext adds the console to context
func NewContext(ctx context.Context, c *Console) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// 📝 formatResult formats a status message for display
func (c *Console) formatResult(m status.Message) string {
	var symbol rune
	var kindColor color.Attribute
	switch m.Kind() {
	case status.KindChanged:
		symbol = '✓'
		kindColor = color.FgGreen
	case status.KindWarning:
		symbol = '!'
		kindColor = color.FgRed
	case status.KindDisabled:
		symbol = '•'
		kindColor = color.FgCyan
	default:
		symbol = '-'
		kindColor = color.FgYellow
	}

	text := strings.TrimPrefix(m.Text(), m.Transform()+": ")

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", resultIndent, ""),
		color.New(kindColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, m.Transform()),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, m.Kind())),
		text)
}

// 📝 Report prints one transform result
func (c *Console) Report(ctx context.Context, m status.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = append(c.results, m)

	fmt.Fprintln(c.console, c.formatResult(m))

	zerolog.Ctx(ctx).Info().
		Str("transform", m.Transform()).
		Str("kind", m.Kind().String()).
		Bool("changed", m.Kind() == status.KindChanged).
		Msg(m.Text())
}

// Results returns every reported message in order
func (c *Console) Results() []status.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]status.Message(nil), c.results...)
}

// 📝 LogNewline logs a newline
func (c *Console) LogNewline() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.console)
}

// 📝 Header prints the file being processed
func (c *Console) Header(ctx context.Context, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("gcodepost")
	fmt.Fprintf(c.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+path))
	zerolog.Ctx(ctx).Info().Str("file", path).Msg("post-processing")
}

// 📝 Success logs a success message
func (c *Console) Success(ctx context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	zerolog.Ctx(ctx).Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (c *Console) Warning(ctx context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	zerolog.Ctx(ctx).Warn().Msg(msg)
}

// 📝 Error logs an error message
func (c *Console) Error(ctx context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	zerolog.Ctx(ctx).Error().Msg(msg)
}

// 📝 Successf logs a formatted success message
func (c *Console) Successf(ctx context.Context, format string, args ...interface{}) {
	c.Success(ctx, fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (c *Console) Warningf(ctx context.Context, format string, args ...interface{}) {
	c.Warning(ctx, fmt.Sprintf(format, args...))
}
