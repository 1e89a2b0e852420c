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

// Package estimator runs the external klipper_estimator post-processor, which rewrites the
// print-time metadata of a G-code file in place.
package estimator

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gcodepost/pkg/config"
	"github.com/walteh/gcodepost/pkg/probe"
)

// commandFunc builds the subprocess, swapped in tests
type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// ⏱️ Estimator invokes the estimator executable against one file
type Estimator struct {
	path         string
	moonrakerURL string
	command      commandFunc
}

// New creates an Estimator. path may be a glob pattern.
func New(path, moonrakerURL string) *Estimator {
	return &Estimator{
		path:         path,
		moonrakerURL: moonrakerURL,
		command:      exec.CommandContext,
	}
}

// Args returns the command line handed to the executable
func (e *Estimator) Args(file string) []string {
	return []string{"--config_moonraker_url", e.moonrakerURL, "post-process", file}
}

// 🏃 Run refuses to start when conn is not connected, otherwise runs the executable and
// waits for it to exit
func (e *Estimator) Run(ctx context.Context, file string, conn probe.Result) error {
	logger := zerolog.Ctx(ctx)

	if !conn.Connected {
		return errors.Errorf("Cannot connect to Moonraker server: %s", conn.Message)
	}

	path, err := config.ResolveExecutable(e.path)
	if err != nil {
		return errors.Errorf("Klipper Estimator executable not found at: %s", e.path)
	}

	logger.Debug().Str("path", path).Strs("args", e.Args(file)).Msg("running estimator")

	var stderr bytes.Buffer
	cmd := e.command(ctx, path, e.Args(file)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			return errors.Errorf("Klipper Estimator failed with error code %d. Error: %s",
				exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, os.ErrNotExist):
			return errors.Errorf("Klipper Estimator executable not found at: %s", path)
		default:
			return errors.Errorf("Klipper Estimator error: %w", err)
		}
	}

	logger.Debug().Str("path", path).Msg("estimator finished")
	return nil
}
