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

package pipeline

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gcodepost/pkg/config"
	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/estimator"
	"github.com/walteh/gcodepost/pkg/probe"
	"github.com/walteh/gcodepost/pkg/prompt"
	"github.com/walteh/gcodepost/pkg/status"
	"github.com/walteh/gcodepost/pkg/transform"
)

const (
	// ProcessedMarker is appended after the status block of every processed file
	ProcessedMarker = "; Postprocessed by gcodepost"

	// AbortPlaceholder replaces the file when the operator closed the soak prompt
	AbortPlaceholder = "; G-code file cleared due to heat soak window being closed without selection"
	// ErrorPlaceholder replaces the file after a fatal error
	ErrorPlaceholder = "; G-code file cleared due to processing error"

	// AbortNotice is shown briefly after an abort
	AbortNotice = "Canceling Slice: uploading blank stl to cancel slice"

	// SoakLabel is the label of the soak time request
	SoakLabel = "Heat soak time (minutes)"

	estimatorName = "Klipper Estimator"
)

var (
	// ErrAborted is the abort-by-design signal: the operator refused to configure the run
	ErrAborted = errors.Base("processing aborted by operator")
	// ErrAlreadyProcessed is returned for files that already carry ProcessedMarker
	ErrAlreadyProcessed = errors.Base("file was already post-processed")
)

// ⏱️ Estimator rewrites the print time metadata of a persisted file
type Estimator interface {
	Run(ctx context.Context, file string, conn probe.Result) error
}

// ProbeFunc starts the reachability check of the estimator service
type ProbeFunc func(ctx context.Context) *probe.Pending

// 🧵 Pipeline owns the document for the duration of one run
type Pipeline struct {
	cfg       *config.Config
	store     *document.Store
	confirm   prompt.Confirmer
	notify    prompt.Notifier
	estimator Estimator
	reporter  transform.Reporter
	probe     ProbeFunc

	state   State
	history []State
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithEstimator replaces the estimator subprocess
func WithEstimator(e Estimator) Option {
	return func(p *Pipeline) { p.estimator = e }
}

// WithReporter receives every status message as it is produced
func WithReporter(r transform.Reporter) Option {
	return func(p *Pipeline) { p.reporter = r }
}

// WithProbe replaces the TCP reachability check
func WithProbe(f ProbeFunc) Option {
	return func(p *Pipeline) { p.probe = f }
}

// 🏗️ New creates a pipeline for the file behind store
func New(cfg *config.Config, store *document.Store, confirm prompt.Confirmer, notify prompt.Notifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		store:     store,
		confirm:   confirm,
		notify:    notify,
		estimator: estimator.New(cfg.Estimator.Path, cfg.Estimator.MoonrakerURL),
		probe: func(ctx context.Context) *probe.Pending {
			return probe.Start(ctx, cfg.Estimator.MoonrakerURL, cfg.Estimator.Timeout)
		},
		state: StateInit,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.history = []State{StateInit}
	return p
}

// State returns the current state
func (p *Pipeline) State() State {
	return p.state
}

// History returns every state entered so far, in order
func (p *Pipeline) History() []State {
	return append([]State(nil), p.history...)
}

func (p *Pipeline) transition(ctx context.Context, to State) {
	zerolog.Ctx(ctx).Debug().Str("from", p.state.String()).Str("to", to.String()).Msg("state transition")
	p.state = to
	p.history = append(p.history, to)
}

// 🎯 Execute runs the pipeline and applies the error policy: aborts and fatal errors wipe
// the file and notify the operator. The caller exits successfully for every outcome.
func (p *Pipeline) Execute(ctx context.Context) Outcome {
	logger := zerolog.Ctx(ctx)

	err := p.Run(ctx)
	switch {
	case err == nil:
		p.transition(ctx, StateDone)
		return OutcomeDone

	case errors.Is(err, ErrAlreadyProcessed):
		p.transition(ctx, StateSkipped)
		logger.Info().Str("file", p.store.Path()).Msg("file already post-processed, leaving it untouched")
		p.notify.Notice(ctx, "Already post-processed, file left untouched: "+p.store.Path())
		return OutcomeSkipped

	case errors.Is(err, ErrAborted):
		p.transition(ctx, StateAborted)
		p.wipe(ctx, AbortPlaceholder)
		p.notify.Notice(ctx, AbortNotice)
		return OutcomeAborted

	default:
		p.transition(ctx, StateFailed)
		logger.Error().Err(err).Msg("post-processing failed")
		p.wipe(ctx, ErrorPlaceholder)
		p.notify.ShowError(ctx, err)
		return OutcomeFailed
	}
}

// wipe renders the file inert; a failing wipe is logged and otherwise ignored
func (p *Pipeline) wipe(ctx context.Context, placeholder string) {
	if err := p.store.Wipe(ctx, placeholder); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("wiping gcode file")
	}
}

// 🏃 Run walks the states up to the final write. It returns ErrAborted, ErrAlreadyProcessed
// or a fatal error, and leaves the error policy to Execute.
func (p *Pipeline) Run(ctx context.Context) error {
	var pending *probe.Pending
	if p.cfg.Features.KlipperEstimator {
		pending = p.probe(ctx)
	}

	doc, err := p.store.Load(ctx)
	if err != nil {
		return errors.Errorf("loading G-code file: %w", err)
	}
	if AlreadyProcessed(doc) {
		return errors.WithStack(ErrAlreadyProcessed)
	}

	soak, err := p.configure(ctx)
	if err != nil {
		return err
	}

	p.transition(ctx, StateLoaded)

	passes := p.passes(soak)
	steps := make([]transform.Step, len(passes))
	for i, ps := range passes {
		steps[i] = ps.step
	}

	collector := status.NewCollector()
	runner := transform.NewRunner(p.reporter, steps...).BeforeEach(func(ctx context.Context, i int, _ transform.Step) {
		p.transition(ctx, passes[i].state)
	})
	if err := runner.Run(ctx, doc, collector); err != nil {
		return err
	}

	if err := p.store.Save(ctx, doc); err != nil {
		return errors.Errorf("writing G-code file: %w", err)
	}
	p.transition(ctx, StatePersisted)

	if p.cfg.Features.KlipperEstimator {
		p.transition(ctx, StateTimeEstimation)

		conn := pending.Await(p.cfg.Estimator.Timeout, p.cfg.Estimator.PollInterval)
		zerolog.Ctx(ctx).Debug().Bool("connected", conn.Connected).Str("message", conn.Message).Msg("connectivity result")

		if err := p.estimator.Run(ctx, p.store.Path(), conn); err != nil {
			return err
		}
		runner.Report(ctx, collector, status.Changed(estimatorName, "%s: Successfully run", estimatorName))
	} else {
		runner.Report(ctx, collector, status.Disabled(estimatorName))
	}

	doc, err = p.store.Load(ctx)
	if err != nil {
		return errors.Errorf("reloading G-code file after running estimator: %w", err)
	}
	p.transition(ctx, StateReloaded)

	doc.Append(collector.Comments()...)
	doc.Append(ProcessedMarker)

	p.transition(ctx, StateFinalWrite)
	if err := p.store.Save(ctx, doc); err != nil {
		return errors.Errorf("writing final G-code: %w", err)
	}

	return nil
}

// configure asks for the soak time when heat soak is enabled
func (p *Pipeline) configure(ctx context.Context) (float64, error) {
	if !p.cfg.Features.HeatSoak {
		return 0, nil
	}

	p.transition(ctx, StateConfigPrompt)

	minutes, err := p.confirm.RequestNumericParameter(ctx, SoakLabel, p.cfg.HeatSoak.DefaultMinutes)
	if errors.Is(err, prompt.ErrAborted) {
		zerolog.Ctx(ctx).Info().Err(err).Msg("soak prompt closed without selection")
		return 0, errors.WithStack(ErrAborted)
	}
	if err != nil {
		return 0, errors.Errorf("heat soak configuration: %w", err)
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		return 0, errors.Errorf("heat soak configuration: %v is not a non-negative number of minutes", minutes)
	}
	return minutes, nil
}

type pass struct {
	state State
	step  transform.Step
}

// passes lists the transforms in execution order
func (p *Pipeline) passes(soak float64) []pass {
	f := p.cfg.Features
	return []pass{
		{StateHeatSoakPass, transform.Step{Transform: transform.NewHeatSoak(soak), Enabled: f.HeatSoak}},
		{StateBrimPass, transform.Step{Transform: transform.NewBrim(p.cfg.Brim, p.confirm), Enabled: f.BrimDetection}},
		{StateDuplicateToolPass, transform.Step{Transform: transform.NewDuplicateTool(p.cfg.Tools), Enabled: f.RemoveDuplicateTool}},
		{StateSpiralPass, transform.Step{Transform: transform.NewSpiral(), Enabled: f.RemoveSpiralMove}},
		{StateToolchangeWaitPass, transform.Step{Transform: transform.NewToolchangeWait(p.cfg.Toolchange), Enabled: f.ToolchangeWait}},
	}
}

// AlreadyProcessed reports whether doc carries the marker of a previous run
func AlreadyProcessed(doc *document.Document) bool {
	for i := doc.Len() - 1; i >= 0; i-- {
		if strings.TrimSpace(doc.Line(i)) == ProcessedMarker {
			return true
		}
	}
	return false
}
