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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/status"
)

// 🔧 Transform is one rewrite pass over a document
type Transform interface {
	// Name is the label used in status messages, e.g. "Brim detection"
	Name() string

	// Apply rewrites doc in place and describes the result. A returned error is fatal
	// for the whole run; an absent pattern is a message, not an error.
	Apply(ctx context.Context, doc *document.Document) ([]status.Message, error)
}

// 📢 Reporter is told about every status message as soon as it is produced
type Reporter interface {
	Report(ctx context.Context, msg status.Message)
}

// Step is a transform together with its configuration toggle
type Step struct {
	Transform Transform
	Enabled   bool
}

// StepHook is called before a step runs, with the step's position in the runner
type StepHook func(ctx context.Context, index int, step Step)

// 🏃 Runner applies steps strictly one after another
type Runner struct {
	reporter Reporter
	steps    []Step
	before   StepHook
}

// 🏗️ NewRunner creates a new runner. reporter may be nil.
func NewRunner(reporter Reporter, steps ...Step) *Runner {
	return &Runner{
		reporter: reporter,
		steps:    steps,
	}
}

// BeforeEach registers hook to be called before every step, enabled or not
func (r *Runner) BeforeEach(hook StepHook) *Runner {
	r.before = hook
	return r
}

// 🏃 Run executes every step against doc and appends the results to c.
// A disabled step contributes a single "<name>: Disabled" message.
func (r *Runner) Run(ctx context.Context, doc *document.Document, c *status.Collector) error {
	for i, step := range r.steps {
		if r.before != nil {
			r.before(ctx, i, step)
		}
		if err := r.runStep(ctx, doc, c, step); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, doc *document.Document, c *status.Collector, step Step) error {
	logger := zerolog.Ctx(ctx)
	name := step.Transform.Name()

	if !step.Enabled {
		logger.Debug().Str("transform", name).Msg("transform disabled")
		r.add(ctx, c, status.Disabled(name))
		return nil
	}

	msgs, err := step.Transform.Apply(ctx, doc)
	if err != nil {
		return errors.Errorf("%s: %w", name, err)
	}

	changed := false
	for _, m := range msgs {
		if m.Kind() == status.KindChanged {
			changed = true
		}
	}
	logger.Info().Str("transform", name).Bool("changed", changed).Int("lines", doc.Len()).Msg("transform applied")

	r.add(ctx, c, msgs...)
	return nil
}

// Report adds messages produced outside of a transform, keeping reporter and collector in step
func (r *Runner) Report(ctx context.Context, c *status.Collector, msgs ...status.Message) {
	r.add(ctx, c, msgs...)
}

func (r *Runner) add(ctx context.Context, c *status.Collector, msgs ...status.Message) {
	c.Add(msgs...)
	if r.reporter == nil {
		return
	}
	for _, m := range msgs {
		r.reporter.Report(ctx, m)
	}
}
