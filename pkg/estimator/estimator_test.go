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

package estimator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/gcodepost/pkg/probe"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())
}

// helperCommand re-executes the test binary as a fake estimator behaving per mode
func helperCommand(mode string) commandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	// -- <path> --config_moonraker_url <url> post-process <file>
	if len(args) != 6 || args[4] != "post-process" {
		fmt.Fprintf(os.Stderr, "unexpected args %v", args)
		os.Exit(2)
	}

	switch os.Getenv("HELPER_MODE") {
	case "ok":
		f, err := os.OpenFile(args[5], os.O_APPEND|os.O_WRONLY, 0)
		if err != nil {
			os.Exit(4)
		}
		fmt.Fprintf(f, "; estimated printing time = 1h\n")
		f.Close()
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "  moonraker returned 500  ")
		os.Exit(3)
	}
	os.Exit(5)
}

func connected() probe.Result {
	return probe.Result{Connected: true, Message: "Connected to Moonraker at 127.0.0.1:7125 in 0.00s"}
}

func gcodeFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "part.gcode")
	require.NoError(t, os.WriteFile(path, []byte("G28\n"), 0o644))
	return path
}

func TestArgs(t *testing.T) {
	e := New("/opt/klipper_estimator", "http://192.168.1.4:7125")
	assert.Equal(t, []string{"--config_moonraker_url", "http://192.168.1.4:7125", "post-process", "a.gcode"}, e.Args("a.gcode"))
}

func TestRun(t *testing.T) {
	t.Run("success_rewrites_file", func(t *testing.T) {
		file := gcodeFile(t)
		e := New("/opt/klipper_estimator", "http://127.0.0.1:7125")
		e.command = helperCommand("ok")

		require.NoError(t, e.Run(testContext(t), file, connected()))

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Equal(t, "G28\n; estimated printing time = 1h\n", string(data))
	})

	t.Run("non_zero_exit", func(t *testing.T) {
		e := New("/opt/klipper_estimator", "http://127.0.0.1:7125")
		e.command = helperCommand("fail")

		err := e.Run(testContext(t), gcodeFile(t), connected())
		require.Error(t, err)
		assert.Equal(t, "Klipper Estimator failed with error code 3. Error: moonraker returned 500", err.Error())
	})

	t.Run("unreachable", func(t *testing.T) {
		e := New("/opt/klipper_estimator", "http://127.0.0.1:7125")
		e.command = helperCommand("ok")

		err := e.Run(testContext(t), gcodeFile(t), probe.Result{Message: "Connectivity check timed out after 3s"})
		require.Error(t, err)
		assert.Equal(t, "Cannot connect to Moonraker server: Connectivity check timed out after 3s", err.Error())
	})

	t.Run("missing_executable", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "klipper_estimator")
		e := New(missing, "http://127.0.0.1:7125")

		err := e.Run(testContext(t), gcodeFile(t), connected())
		require.Error(t, err)
		assert.Equal(t, "Klipper Estimator executable not found at: "+missing, err.Error())
	})

	t.Run("glob_without_match", func(t *testing.T) {
		pattern := filepath.Join(t.TempDir(), "klipper_estimator*")
		e := New(pattern, "http://127.0.0.1:7125")

		err := e.Run(testContext(t), gcodeFile(t), connected())
		require.Error(t, err)
		assert.Equal(t, "Klipper Estimator executable not found at: "+pattern, err.Error())
	})
}
