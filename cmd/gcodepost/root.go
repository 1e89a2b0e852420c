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

package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/walteh/gcodepost/pkg/config"
	"github.com/walteh/gcodepost/pkg/document"
	"github.com/walteh/gcodepost/pkg/log"
	"github.com/walteh/gcodepost/pkg/pipeline"
	"github.com/walteh/gcodepost/pkg/prompt"
	"github.com/walteh/gcodepost/pkg/status"
)

// rootOptions holds the flags that are not configuration overrides
type rootOptions struct {
	configFile      string
	debug           bool
	nonInteractive  bool
	soakTime        float64
	acceptLargeBrim bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gcodepost <file>",
		Short: "Post-process sliced G-code for Klipper printers",
		Long: `gcodepost rewrites a G-code file in place after slicing: it injects the heat soak time,
the detected brim clearance for adaptive purging, removes a duplicate tool selection and the
filament swap spiral, adds temperature waits to toolchanges and runs Klipper Estimator.

Every outcome exits successfully. When processing is aborted or fails the file is replaced
by a single placeholder comment so a half-transformed file never reaches the printer.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.run(cmd, args[0])
			return nil
		},
	}

	addRootFlags(cmd, opts)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags registers the command flags and one flag per configuration override
func addRootFlags(cmd *cobra.Command, opts *rootOptions) {
	def := config.Default()
	f := cmd.Flags()

	f.StringVarP(&opts.configFile, "config", "c", "", "config file path (.yaml, .yml, .json or .hcl)")
	f.BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	f.BoolVar(&opts.nonInteractive, "non-interactive", false, "never prompt, answer from flags instead")
	f.Float64Var(&opts.soakTime, "soak-time", def.HeatSoak.DefaultMinutes, "heat soak minutes used without a terminal")
	f.BoolVar(&opts.acceptLargeBrim, "accept-large-brim", false, "accept a brim clearance above the warning threshold without a terminal")

	f.Bool("heat-soak", def.Features.HeatSoak, "enable heat soak injection")
	f.Bool("brim-detection", def.Features.BrimDetection, "enable brim clearance detection")
	f.Bool("remove-duplicate-tool", def.Features.RemoveDuplicateTool, "enable duplicate tool selection removal")
	f.Bool("remove-spiral-move", def.Features.RemoveSpiralMove, "enable filament swap spiral removal")
	f.Bool("toolchange-wait", def.Features.ToolchangeWait, "enable toolchange temperature waits")
	f.Bool("klipper-estimator", def.Features.KlipperEstimator, "enable Klipper Estimator post-processing")
	f.String("estimator-path", def.Estimator.Path, "Klipper Estimator executable, may be a glob")
	f.String("moonraker-url", def.Estimator.MoonrakerURL, "Moonraker endpoint used by Klipper Estimator")
	f.Duration("moonraker-timeout", def.Estimator.Timeout, "connectivity check timeout")
	f.Float64("soak-default", def.HeatSoak.DefaultMinutes, "default heat soak minutes offered by the prompt")
	f.Float64("brim-warning", def.Brim.WarningThreshold, "brim clearance in mm that requires confirmation")
	f.Float64("min-wait-temp", def.Toolchange.MinWaitTemp, "lowest toolchange target that gets a temperature wait")
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

// run processes path and reports the outcome. Configuration errors follow the same
// wipe-and-notify policy as pipeline errors.
func (o *rootOptions) run(cmd *cobra.Command, path string) pipeline.Outcome {
	logger := newLogger(o.debug)
	console := log.New(cmd.OutOrStdout())
	ctx := log.NewContext(logger.WithContext(cmd.Context()), console)

	interactive := !o.nonInteractive && term.IsTerminal(int(os.Stdin.Fd()))
	notify := &prompt.Console{Out: cmd.OutOrStdout(), In: cmd.InOrStdin(), Dismiss: interactive}
	store := document.NewStore(path)

	console.Header(ctx, path)

	cfg, err := config.Load(ctx, o.configFile, cmd.Flags())
	if err != nil {
		logger.Error().Err(err).Msg("loading configuration")
		if werr := store.Wipe(ctx, pipeline.ErrorPlaceholder); werr != nil {
			logger.Error().Err(werr).Msg("wiping gcode file")
		}
		notify.ShowError(ctx, err)
		summarize(ctx, path, pipeline.OutcomeFailed)
		return pipeline.OutcomeFailed
	}

	p := pipeline.New(cfg, store, o.confirmer(interactive, cmd.Flags()), notify, pipeline.WithReporter(console))
	outcome := p.Execute(ctx)
	summarize(ctx, path, outcome)

	return outcome
}

// summarize prints the closing line for outcome with the console stored in ctx
func summarize(ctx context.Context, path string, outcome pipeline.Outcome) {
	console := log.FromContext(ctx)
	console.LogNewline()

	switch outcome {
	case pipeline.OutcomeDone:
		changes := 0
		for _, m := range console.Results() {
			if m.Kind() == status.KindChanged {
				changes++
			}
		}
		console.Successf(ctx, "post-processed %s, changes: %d", path, changes)
	case pipeline.OutcomeSkipped:
		console.Warningf(ctx, "already post-processed, nothing to do for %s", path)
	case pipeline.OutcomeAborted:
		console.Warningf(ctx, "aborted, %s cleared", path)
	default:
		console.Error(ctx, "failed, file cleared")
	}
}

// confirmer picks the terminal prompts or, when nobody can answer them, the flag values
func (o *rootOptions) confirmer(interactive bool, flags *pflag.FlagSet) prompt.Confirmer {
	if interactive {
		return prompt.NewTerminal()
	}
	s := &prompt.Static{Accept: o.acceptLargeBrim}
	if flags.Changed("soak-time") {
		s.Numeric = map[string]float64{pipeline.SoakLabel: o.soakTime}
	}
	return s
}
